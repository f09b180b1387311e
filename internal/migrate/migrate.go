package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/timedash/migrations"
)

// Migration is a single schema change with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// EnsureMigrationsTable creates the schema_migrations table if it doesn't exist.
func EnsureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// CurrentVersion returns the applied version and whether the last run was interrupted.
func CurrentVersion(ctx context.Context, db *sql.DB) (int, bool, error) {
	var version, dirty int
	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

func setVersion(ctx context.Context, db *sql.DB, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// Load reads the embedded migration files sorted by version.
func Load() ([]Migration, error) {
	return loadFrom(migrations.FS)
}

func loadFrom(fsys fs.FS) ([]Migration, error) {
	var result []Migration

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(path.Base(p))
		if matches == nil {
			return nil
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return fmt.Errorf("parse version of %s: %w", p, err)
		}
		name := matches[2]

		upSQL, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		downPath := path.Join(path.Dir(p), fmt.Sprintf("%s_%s.down.sql", matches[1], name))
		downSQL, err := fs.ReadFile(fsys, downPath)
		if err != nil {
			downSQL = nil
		}

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// SplitSQL splits a SQL script into statements by semicolons.
func SplitSQL(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func run(ctx context.Context, db *sql.DB, logger *log.Logger, m Migration, up bool) error {
	direction := "up"
	script := m.UpSQL
	target := m.Version
	if !up {
		direction = "down"
		script = m.DownSQL
		target = m.Version - 1
	}

	logger.Info("applying migration", "direction", direction, "version", m.Version, "name", m.Name)

	if err := setVersion(ctx, db, m.Version, true); err != nil {
		return fmt.Errorf("set dirty flag: %w", err)
	}
	for _, stmt := range SplitSQL(script) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d %s: %w\nSQL: %s", m.Version, direction, err, stmt)
		}
	}
	if err := setVersion(ctx, db, target, false); err != nil {
		return fmt.Errorf("clear dirty flag: %w", err)
	}
	return nil
}

func prepare(ctx context.Context, db *sql.DB) (int, []Migration, error) {
	if err := EnsureMigrationsTable(ctx, db); err != nil {
		return 0, nil, fmt.Errorf("create migrations table: %w", err)
	}

	current, dirty, err := CurrentVersion(ctx, db)
	if err != nil {
		return 0, nil, fmt.Errorf("get current version: %w", err)
	}
	if dirty {
		return 0, nil, fmt.Errorf("database is in dirty state at version %d", current)
	}

	all, err := Load()
	if err != nil {
		return 0, nil, fmt.Errorf("load migrations: %w", err)
	}
	return current, all, nil
}

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB, logger *log.Logger) (int, error) {
	return UpTo(ctx, db, logger, math.MaxInt)
}

// UpTo applies pending migrations up to and including target.
func UpTo(ctx context.Context, db *sql.DB, logger *log.Logger, target int) (int, error) {
	current, all, err := prepare(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}
		if m.Version > target {
			break
		}
		if err := run(ctx, db, logger, m, true); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// DownTo reverts migrations until the schema is at target.
func DownTo(ctx context.Context, db *sql.DB, logger *log.Logger, target int) error {
	current, all, err := prepare(ctx, db)
	if err != nil {
		return err
	}

	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if m.Version > current {
			continue
		}
		if m.Version <= target {
			break
		}
		if m.DownSQL == "" {
			return fmt.Errorf("no down migration for version %d", m.Version)
		}
		if err := run(ctx, db, logger, m, false); err != nil {
			return err
		}
	}
	return nil
}

// RunAll applies pending migrations without logging.
func RunAll(ctx context.Context, db *sql.DB) error {
	_, err := Up(ctx, db, log.New(io.Discard))
	return err
}
