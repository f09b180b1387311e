package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

const (
	serviceName    = "timedash"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when export is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter pushes dashboard metrics to an OTEL Collector.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	loadsTotal   metric.Int64Counter
	rendersTotal metric.Int64Counter
	cardsWritten metric.Int64Counter
	cardsSkipped metric.Int64Counter
	selectsTotal metric.Int64Counter
}

// NewExporter creates an exporter sending over OTLP/gRPC.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	loadsTotal, err := meter.Int64Counter(
		"timedash_loads_total",
		metric.WithDescription("Dataset load attempts by source and outcome"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loads counter: %w", err)
	}

	rendersTotal, err := meter.Int64Counter(
		"timedash_renders_total",
		metric.WithDescription("Dashboard renders by timeframe"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating renders counter: %w", err)
	}

	cardsWritten, err := meter.Int64Counter(
		"timedash_cards_written_total",
		metric.WithDescription("Cards updated by renders"),
		metric.WithUnit("{card}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cards written counter: %w", err)
	}

	cardsSkipped, err := meter.Int64Counter(
		"timedash_cards_skipped_total",
		metric.WithDescription("Records skipped for lack of a card or timeframe"),
		metric.WithUnit("{card}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cards skipped counter: %w", err)
	}

	selectsTotal, err := meter.Int64Counter(
		"timedash_timeframe_selections_total",
		metric.WithDescription("Timeframe selections by outcome"),
		metric.WithUnit("{selection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating selections counter: %w", err)
	}

	return &Exporter{
		provider:     provider,
		loadsTotal:   loadsTotal,
		rendersTotal: rendersTotal,
		cardsWritten: cardsWritten,
		cardsSkipped: cardsSkipped,
		selectsTotal: selectsTotal,
	}, nil
}

func outcome(ok bool) attribute.KeyValue {
	if ok {
		return attribute.String("outcome", "ok")
	}
	return attribute.String("outcome", "error")
}

func (e *Exporter) RecordLoad(ctx context.Context, source string, err error) {
	e.loadsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		outcome(err == nil),
	))
}

func (e *Exporter) RecordRender(ctx context.Context, tf domain.Timeframe, written, skipped int) {
	opt := metric.WithAttributes(attribute.String("timeframe", tf.String()))
	e.rendersTotal.Add(ctx, 1, opt)
	e.cardsWritten.Add(ctx, int64(written), opt)
	e.cardsSkipped.Add(ctx, int64(skipped), opt)
}

// RecordSelection only labels accepted selections with their timeframe so
// arbitrary client input cannot inflate attribute cardinality.
func (e *Exporter) RecordSelection(ctx context.Context, candidate string, accepted bool) {
	tf := "invalid"
	if accepted {
		tf = candidate
	}
	e.selectsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("timeframe", tf),
		outcome(accepted),
	))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
