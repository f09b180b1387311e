package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/timedash/internal/adapters/otel"
	"github.com/emiliopalmerini/timedash/internal/adapters/prometheus"
	"github.com/emiliopalmerini/timedash/internal/adapters/turso"
	"github.com/emiliopalmerini/timedash/internal/config"
	"github.com/emiliopalmerini/timedash/internal/dashboard"
	"github.com/emiliopalmerini/timedash/internal/migrate"
	"github.com/emiliopalmerini/timedash/internal/ports"
	"github.com/emiliopalmerini/timedash/internal/source"
)

// AppContext holds the shared dependencies of the dashboard commands.
type AppContext struct {
	DB             *sql.DB
	Source         ports.ActivitySource
	Metrics        ports.DashboardMetrics
	MetricsHandler http.Handler
	Dashboard      *dashboard.Renderer
}

// NewAppContext builds the source, metrics and renderer described by c.
func NewAppContext(ctx context.Context, c *config.Config, logger *log.Logger) (*AppContext, error) {
	app := &AppContext{}

	src, db, err := newSource(ctx, c)
	if err != nil {
		return nil, err
	}
	app.Source = src
	app.DB = db

	recorder := prometheus.NewRecorder()
	app.MetricsHandler = recorder.Handler()
	app.Metrics = ports.MultiMetrics{recorder, newOTelExporter(ctx, c.OTel, logger)}

	app.Dashboard = dashboard.NewRenderer(src, nil,
		dashboard.WithMetrics(app.Metrics),
		dashboard.WithLogger(logger),
	)
	logger.Debug("dashboard ready", "source", src.Name(), "session", app.Dashboard.SessionID())
	return app, nil
}

func newSource(ctx context.Context, c *config.Config) (ports.ActivitySource, *sql.DB, error) {
	switch c.Source {
	case config.SourceEmbedded:
		return source.NewEmbedded(), nil, nil
	case config.SourceFile:
		return source.NewFile(c.DataFile), nil, nil
	case config.SourceHTTP:
		return source.NewHTTP(c.DataURL, nil), nil, nil
	case config.SourceTurso:
		db, err := openDB(ctx, c)
		if err != nil {
			return nil, nil, err
		}
		return turso.NewActivityRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", c.Source)
	}
}

func openDB(ctx context.Context, c *config.Config) (*sql.DB, error) {
	db, err := turso.NewDB(c.Database.URL, c.Database.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func newOTelExporter(ctx context.Context, c otel.Config, logger *log.Logger) ports.DashboardMetrics {
	exp, err := otel.NewExporter(ctx, c)
	if err != nil {
		if !errors.Is(err, otel.ErrDisabled) {
			logger.Warn("OTEL export unavailable", "err", err)
		}
		return otel.NewNoOpExporter()
	}
	return exp
}

// Close flushes metrics and releases the database connection.
func (a *AppContext) Close(ctx context.Context) error {
	var errs []error
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(ctx))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
