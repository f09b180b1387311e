package ports

import (
	"context"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// DashboardMetrics records dashboard activity to an observability backend.
type DashboardMetrics interface {
	RecordLoad(ctx context.Context, source string, err error)
	RecordRender(ctx context.Context, tf domain.Timeframe, written, skipped int)
	RecordSelection(ctx context.Context, candidate string, accepted bool)
	// Close flushes pending metrics.
	Close(ctx context.Context) error
}

// MultiMetrics fans every call out to each recorder.
type MultiMetrics []DashboardMetrics

func (m MultiMetrics) RecordLoad(ctx context.Context, source string, err error) {
	for _, r := range m {
		r.RecordLoad(ctx, source, err)
	}
}

func (m MultiMetrics) RecordRender(ctx context.Context, tf domain.Timeframe, written, skipped int) {
	for _, r := range m {
		r.RecordRender(ctx, tf, written, skipped)
	}
}

func (m MultiMetrics) RecordSelection(ctx context.Context, candidate string, accepted bool) {
	for _, r := range m {
		r.RecordSelection(ctx, candidate, accepted)
	}
}

func (m MultiMetrics) Close(ctx context.Context) error {
	var firstErr error
	for _, r := range m {
		if err := r.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
