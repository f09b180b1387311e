package otel

import (
	"context"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordLoad(context.Context, string, error) {}

func (e *NoOpExporter) RecordRender(context.Context, domain.Timeframe, int, int) {}

func (e *NoOpExporter) RecordSelection(context.Context, string, bool) {}

func (e *NoOpExporter) Close(context.Context) error {
	return nil
}
