package ports

import (
	"context"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// ActivitySource fetches the activity dataset a dashboard renders.
type ActivitySource interface {
	Fetch(ctx context.Context) (domain.Dataset, error)
	// Name identifies the source in logs and metrics.
	Name() string
}

// ActivityRepository stores a dataset so it can later be served as a source.
type ActivityRepository interface {
	ActivitySource
	ReplaceAll(ctx context.Context, ds domain.Dataset) error
}
