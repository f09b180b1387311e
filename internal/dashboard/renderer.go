package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/emiliopalmerini/timedash/internal/domain"
	"github.com/emiliopalmerini/timedash/internal/ports"
)

// ErrAlreadyLoaded is returned by Load once a dataset has been stored.
var ErrAlreadyLoaded = errors.New("dataset already loaded")

// State is the page-session state: the loaded dataset and the selected timeframe.
type State struct {
	Dataset  domain.Dataset
	Selected domain.Timeframe
	Loaded   bool
}

// NewState returns an empty state with the default timeframe selected.
func NewState() State {
	return State{Selected: domain.DefaultTimeframe}
}

// RenderResult reports what a render wrote. Titles without a card and
// records without the requested timeframe end up in Skipped.
type RenderResult struct {
	Timeframe domain.Timeframe
	Written   []string
	Skipped   []string
}

// Snapshot is a consistent copy of the renderer's visible state.
type Snapshot struct {
	SessionID string
	Selected  domain.Timeframe
	Loaded    bool
	Cards     []Card
	Selectors []Selector
}

// Renderer projects a dataset onto a Document. All mutation goes through
// its methods and is serialized by an internal mutex.
type Renderer struct {
	mu      sync.Mutex
	id      string
	state   State
	doc     *Document
	source  ports.ActivitySource
	metrics ports.DashboardMetrics
	logger  *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMetrics records loads, renders and selections to m.
func WithMetrics(m ports.DashboardMetrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithLogger sets the logger; the default discards output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer creates a renderer over doc. A nil doc gets the default document.
func NewRenderer(source ports.ActivitySource, doc *Document, opts ...Option) *Renderer {
	if doc == nil {
		doc = NewDocument()
	}
	r := &Renderer{
		id:      uuid.NewString(),
		state:   NewState(),
		doc:     doc,
		source:  source,
		metrics: ports.MultiMetrics(nil),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("session", r.id)
	return r
}

// SessionID identifies this page session in logs.
func (r *Renderer) SessionID() string {
	return r.id
}

// Load fetches the dataset and renders the selected timeframe. On failure
// the dataset stays empty and the document keeps its placeholders.
func (r *Renderer) Load(ctx context.Context) error {
	r.mu.Lock()
	loaded := r.state.Loaded
	r.mu.Unlock()
	if loaded {
		return ErrAlreadyLoaded
	}

	// Fetch without the lock so selections stay responsive while it runs.
	ds, err := r.source.Fetch(ctx)
	r.metrics.RecordLoad(ctx, r.source.Name(), err)
	if err != nil {
		return fmt.Errorf("load from %s: %w", r.source.Name(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Loaded {
		return ErrAlreadyLoaded
	}
	r.state.Dataset = ds.Clone()
	r.state.Loaded = true
	r.logger.Debug("dataset loaded", "source", r.source.Name(), "records", len(ds))

	r.render(ctx, r.state.Selected)
	return nil
}

// Render writes the current and previous text of every mapped record for tf.
func (r *Renderer) Render(ctx context.Context, tf domain.Timeframe) RenderResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.render(ctx, tf)
}

func (r *Renderer) render(ctx context.Context, tf domain.Timeframe) RenderResult {
	res := r.project(r.doc, tf)
	if len(r.state.Dataset) == 0 {
		return res
	}
	if len(res.Skipped) > 0 {
		r.logger.Debug("cards skipped", "timeframe", tf, "titles", res.Skipped)
	}
	r.metrics.RecordRender(ctx, tf, len(res.Written), len(res.Skipped))
	return res
}

// project writes the dataset's tf values into doc.
func (r *Renderer) project(doc *Document, tf domain.Timeframe) RenderResult {
	res := RenderResult{Timeframe: tf}

	for _, rec := range r.state.Dataset {
		id, ok := domain.CardID(rec.Title)
		if !ok {
			res.Skipped = append(res.Skipped, rec.Title)
			continue
		}
		card, ok := doc.Card(id)
		if !ok {
			res.Skipped = append(res.Skipped, rec.Title)
			continue
		}
		p, ok := rec.Period(tf)
		if !ok {
			res.Skipped = append(res.Skipped, rec.Title)
			continue
		}
		doc.setText(card, domain.CurrentText(p), domain.PreviousText(tf, p))
		res.Written = append(res.Written, rec.Title)
	}
	return res
}

// SelectTimeframe switches to candidate and repaints. An unknown candidate
// leaves state and document untouched and returns ErrUnknownTimeframe.
func (r *Renderer) SelectTimeframe(ctx context.Context, candidate string) error {
	tf, err := domain.ParseTimeframe(candidate)
	r.metrics.RecordSelection(ctx, candidate, err == nil)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Selected = tf
	highlightActive(r.doc, tf)
	r.render(ctx, tf)
	return nil
}

// HighlightActive marks exactly the selectors for tf as active.
func (r *Renderer) HighlightActive(tf domain.Timeframe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	highlightActive(r.doc, tf)
}

func highlightActive(doc *Document, tf domain.Timeframe) {
	for _, s := range doc.selectors {
		s.Active = s.Timeframe == tf.String()
	}
}

// Selected returns the selected timeframe.
func (r *Renderer) Selected() domain.Timeframe {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Selected
}

// Dataset returns a copy of the loaded dataset; empty until Load succeeds.
func (r *Renderer) Dataset() domain.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Dataset.Clone()
}

// Snapshot copies the visible state for a view layer.
func (r *Renderer) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		SessionID: r.id,
		Selected:  r.state.Selected,
		Loaded:    r.state.Loaded,
		Cards:     r.doc.Cards(),
		Selectors: r.doc.Selectors(),
	}
}

// Preview shows how the document would look with tf selected, without
// changing the shared state or document.
func (r *Renderer) Preview(tf domain.Timeframe) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.doc.clone()
	highlightActive(doc, tf)
	r.project(doc, tf)
	return Snapshot{
		SessionID: r.id,
		Selected:  tf,
		Loaded:    r.state.Loaded,
		Cards:     doc.Cards(),
		Selectors: doc.Selectors(),
	}
}
