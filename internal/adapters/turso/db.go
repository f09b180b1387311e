package turso

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// NewDB opens a libsql connection. Remote Turso URLs carry the auth token as
// a query parameter; local file URLs are opened as-is.
func NewDB(databaseURL, authToken string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	connStr := databaseURL
	if authToken != "" && !strings.HasPrefix(databaseURL, "file:") {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		connStr = databaseURL + sep + "authToken=" + authToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Turso closes idle streams aggressively; avoid reusing stale connections.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
