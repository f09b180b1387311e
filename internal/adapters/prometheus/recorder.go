package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// Recorder exposes dashboard metrics for scraping.
type Recorder struct {
	registry     *prometheus.Registry
	loads        *prometheus.CounterVec
	renders      *prometheus.CounterVec
	cardsSkipped *prometheus.CounterVec
	selections   *prometheus.CounterVec
}

// NewRecorder registers the dashboard collectors on a private registry
// alongside the Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedash_loads_total",
			Help: "Dataset load attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedash_renders_total",
			Help: "Dashboard renders by timeframe.",
		}, []string{"timeframe"}),
		cardsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedash_cards_skipped_total",
			Help: "Records skipped for lack of a card or timeframe.",
		}, []string{"timeframe"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedash_timeframe_selections_total",
			Help: "Timeframe selections by outcome.",
		}, []string{"timeframe", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.loads, r.renders, r.cardsSkipped, r.selections,
	)
	return r
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func (r *Recorder) RecordLoad(_ context.Context, source string, err error) {
	r.loads.WithLabelValues(source, outcome(err == nil)).Inc()
}

func (r *Recorder) RecordRender(_ context.Context, tf domain.Timeframe, _ int, skipped int) {
	r.renders.WithLabelValues(tf.String()).Inc()
	r.cardsSkipped.WithLabelValues(tf.String()).Add(float64(skipped))
}

func (r *Recorder) RecordSelection(_ context.Context, candidate string, accepted bool) {
	tf := "invalid"
	if accepted {
		tf = candidate
	}
	r.selections.WithLabelValues(tf, outcome(accepted)).Inc()
}

func (r *Recorder) Close(context.Context) error { return nil }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
