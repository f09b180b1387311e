package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// ActivityRepository stores the activity dataset in libsql and serves it
// back as a dashboard source.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Name() string { return "turso" }

// ReplaceAll swaps the stored dataset for ds in a single transaction.
func (r *ActivityRepository) ReplaceAll(ctx context.Context, ds domain.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_periods`); err != nil {
		return fmt.Errorf("clear periods: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}

	for pos, rec := range ds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activities (position, title) VALUES (?, ?)`,
			pos, rec.Title,
		); err != nil {
			return fmt.Errorf("insert activity %q: %w", rec.Title, err)
		}
		for tf, p := range rec.Timeframes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO activity_periods (activity_position, timeframe, current_hours, previous_hours) VALUES (?, ?, ?, ?)`,
				pos, string(tf), p.Current, p.Previous,
			); err != nil {
				return fmt.Errorf("insert %s period for %q: %w", tf, rec.Title, err)
			}
		}
	}

	return tx.Commit()
}

// Fetch returns the stored dataset in import order.
func (r *ActivityRepository) Fetch(ctx context.Context) (domain.Dataset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.position, a.title, p.timeframe, p.current_hours, p.previous_hours
		FROM activities a
		LEFT JOIN activity_periods p ON p.activity_position = a.position
		ORDER BY a.position, p.timeframe
	`)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var ds domain.Dataset
	lastPos := -1
	for rows.Next() {
		var (
			pos       int
			title     string
			timeframe sql.NullString
			current   sql.NullFloat64
			previous  sql.NullFloat64
		)
		if err := rows.Scan(&pos, &title, &timeframe, &current, &previous); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}

		if pos != lastPos {
			ds = append(ds, domain.ActivityRecord{
				Title:      title,
				Timeframes: make(map[domain.Timeframe]domain.Period),
			})
			lastPos = pos
		}
		if timeframe.Valid {
			ds[len(ds)-1].Timeframes[domain.Timeframe(timeframe.String)] = domain.Period{
				Current:  current.Float64,
				Previous: previous.Float64,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return ds, nil
}
