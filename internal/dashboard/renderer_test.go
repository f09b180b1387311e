package dashboard

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

type stubSource struct {
	ds    domain.Dataset
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ds, s.err
}

func (s *stubSource) Name() string { return "stub" }

type recordingMetrics struct {
	mu         sync.Mutex
	loads      []error
	renders    int
	selections map[string]bool
}

func (m *recordingMetrics) RecordLoad(_ context.Context, _ string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, err)
}

func (m *recordingMetrics) RecordRender(context.Context, domain.Timeframe, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
}

func (m *recordingMetrics) RecordSelection(_ context.Context, candidate string, accepted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selections == nil {
		m.selections = make(map[string]bool)
	}
	m.selections[candidate] = accepted
}

func (m *recordingMetrics) Close(context.Context) error { return nil }

func workDataset() domain.Dataset {
	return domain.Dataset{
		{
			Title: "Work",
			Timeframes: map[domain.Timeframe]domain.Period{
				domain.Daily:   {Current: 5, Previous: 7},
				domain.Weekly:  {Current: 10, Previous: 8},
				domain.Monthly: {Current: 103, Previous: 128},
			},
		},
	}
}

func cardByID(t *testing.T, cards []Card, id string) Card {
	t.Helper()
	for _, c := range cards {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("card %q not found", id)
	return Card{}
}

func loadedRenderer(t *testing.T, ds domain.Dataset) *Renderer {
	t.Helper()
	r := NewRenderer(&stubSource{ds: ds}, nil)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

func TestLoad_RendersDefaultTimeframe(t *testing.T) {
	r := loadedRenderer(t, workDataset())

	snap := r.Snapshot()
	if !snap.Loaded {
		t.Fatal("expected snapshot to be loaded")
	}
	if snap.Selected != domain.Weekly {
		t.Errorf("selected = %q, want weekly", snap.Selected)
	}

	work := cardByID(t, snap.Cards, "work")
	if work.Current != "10hrs" {
		t.Errorf("current = %q, want 10hrs", work.Current)
	}
	if work.Previous != "Last Week - 8hrs" {
		t.Errorf("previous = %q, want %q", work.Previous, "Last Week - 8hrs")
	}

	play := cardByID(t, snap.Cards, "play")
	if play.Current != PlaceholderCurrent || play.Previous != PlaceholderPrevious {
		t.Errorf("play card should keep placeholders, got %+v", play)
	}
}

func TestLoad_FailureKeepsPlaceholders(t *testing.T) {
	fetchErr := errors.New("connection refused")
	metrics := &recordingMetrics{}
	r := NewRenderer(&stubSource{err: fetchErr}, nil, WithMetrics(metrics))

	err := r.Load(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Load error = %v, want wrapped %v", err, fetchErr)
	}
	if len(r.Dataset()) != 0 {
		t.Errorf("dataset should stay empty after failed load")
	}

	snap := r.Snapshot()
	if snap.Loaded {
		t.Errorf("snapshot should not be loaded")
	}
	for _, c := range snap.Cards {
		if c.Current != PlaceholderCurrent {
			t.Errorf("card %s current = %q, want placeholder", c.ID, c.Current)
		}
	}
	if len(metrics.loads) != 1 || metrics.loads[0] == nil {
		t.Errorf("expected one failed load recorded, got %v", metrics.loads)
	}
}

func TestLoad_OnlyOnce(t *testing.T) {
	src := &stubSource{ds: workDataset()}
	r := NewRenderer(src, nil)
	ctx := context.Background()

	if err := r.Load(ctx); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if err := r.Load(ctx); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load error = %v, want ErrAlreadyLoaded", err)
	}
	if src.calls != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(&stubSource{ds: workDataset()}, nil)
	if err := r.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v, want context.Canceled", err)
	}
}

func TestLoad_RendersTimeframeSelectedBeforeArrival(t *testing.T) {
	r := NewRenderer(&stubSource{ds: workDataset()}, nil)
	ctx := context.Background()

	if err := r.SelectTimeframe(ctx, "daily"); err != nil {
		t.Fatalf("SelectTimeframe: %v", err)
	}
	if err := r.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	work := cardByID(t, r.Snapshot().Cards, "work")
	if work.Current != "5hrs" || work.Previous != "Yesterday - 7hrs" {
		t.Errorf("work card = %+v, want daily values", work)
	}
}

func TestSelectTimeframe_HighlightsExactlyOne(t *testing.T) {
	for _, tf := range domain.Timeframes {
		t.Run(tf.String(), func(t *testing.T) {
			r := loadedRenderer(t, workDataset())
			if err := r.SelectTimeframe(context.Background(), tf.String()); err != nil {
				t.Fatalf("SelectTimeframe: %v", err)
			}

			active := 0
			for _, s := range r.Snapshot().Selectors {
				if s.Active {
					active++
					if s.Timeframe != tf.String() {
						t.Errorf("selector %q active, want only %q", s.Timeframe, tf)
					}
				}
			}
			if active != 1 {
				t.Errorf("%d selectors active, want 1", active)
			}
			if r.Selected() != tf {
				t.Errorf("selected = %q, want %q", r.Selected(), tf)
			}
		})
	}
}

func TestSelectTimeframe_Unknown(t *testing.T) {
	metrics := &recordingMetrics{}
	r := NewRenderer(&stubSource{ds: workDataset()}, nil, WithMetrics(metrics))
	ctx := context.Background()
	if err := r.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := r.Snapshot()

	err := r.SelectTimeframe(ctx, "yearly")
	if !errors.Is(err, domain.ErrUnknownTimeframe) {
		t.Fatalf("SelectTimeframe error = %v, want ErrUnknownTimeframe", err)
	}

	after := r.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("unknown timeframe changed visible state:\nbefore %+v\nafter  %+v", before, after)
	}
	if accepted, ok := metrics.selections["yearly"]; !ok || accepted {
		t.Errorf("expected rejected selection recorded, got %v", metrics.selections)
	}
}

func TestRender_UnknownTitleSkipped(t *testing.T) {
	ds := append(workDataset(), domain.ActivityRecord{
		Title: "Sleep",
		Timeframes: map[domain.Timeframe]domain.Period{
			domain.Weekly: {Current: 56, Previous: 49},
		},
	})
	r := loadedRenderer(t, ds)

	res := r.Render(context.Background(), domain.Weekly)
	if !reflect.DeepEqual(res.Written, []string{"Work"}) {
		t.Errorf("written = %v, want [Work]", res.Written)
	}
	if !reflect.DeepEqual(res.Skipped, []string{"Sleep"}) {
		t.Errorf("skipped = %v, want [Sleep]", res.Skipped)
	}
	if got := cardByID(t, r.Snapshot().Cards, "work").Current; got != "10hrs" {
		t.Errorf("work current = %q, want 10hrs", got)
	}
}

func TestRender_MissingCardSkipped(t *testing.T) {
	doc := NewCustomDocument(
		[]Card{{ID: "play", Title: "Play"}},
		[]Selector{{Timeframe: "weekly", Active: true}},
	)
	ds := append(workDataset(), domain.ActivityRecord{
		Title: "Play",
		Timeframes: map[domain.Timeframe]domain.Period{
			domain.Weekly: {Current: 4, Previous: 3},
		},
	})
	r := NewRenderer(&stubSource{ds: ds}, doc)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	play := cardByID(t, r.Snapshot().Cards, "play")
	if play.Current != "4hrs" || play.Previous != "Last Week - 3hrs" {
		t.Errorf("play card = %+v", play)
	}
	res := r.Render(context.Background(), domain.Weekly)
	if !reflect.DeepEqual(res.Skipped, []string{"Work"}) {
		t.Errorf("skipped = %v, want [Work]", res.Skipped)
	}
}

func TestRender_MissingTimeframeSkipped(t *testing.T) {
	ds := domain.Dataset{{
		Title:      "Work",
		Timeframes: map[domain.Timeframe]domain.Period{domain.Weekly: {Current: 1, Previous: 2}},
	}}
	r := loadedRenderer(t, ds)

	res := r.Render(context.Background(), domain.Monthly)
	if len(res.Written) != 0 || len(res.Skipped) != 1 {
		t.Errorf("render result = %+v, want Work skipped", res)
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := loadedRenderer(t, workDataset())
	ctx := context.Background()

	r.Render(ctx, domain.Monthly)
	first := r.Snapshot().Cards
	r.Render(ctx, domain.Monthly)
	second := r.Snapshot().Cards

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second render changed output:\n%+v\n%+v", first, second)
	}
}

func TestRender_EmptyDatasetNoWrites(t *testing.T) {
	doc := NewDocument()
	r := NewRenderer(&stubSource{}, doc)

	res := r.Render(context.Background(), domain.Weekly)
	if len(res.Written) != 0 || len(res.Skipped) != 0 {
		t.Errorf("render result = %+v, want empty", res)
	}
	if doc.Writes() != 0 {
		t.Errorf("document writes = %d, want 0", doc.Writes())
	}

	if err := r.SelectTimeframe(context.Background(), "daily"); err != nil {
		t.Fatalf("SelectTimeframe: %v", err)
	}
	if doc.Writes() != 0 {
		t.Errorf("selection before load wrote %d times", doc.Writes())
	}
}

func TestRenderer_ConcurrentSelections(t *testing.T) {
	r := loadedRenderer(t, workDataset())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		tf := domain.Timeframes[i%len(domain.Timeframes)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.SelectTimeframe(ctx, tf.String())
			_ = r.Snapshot()
		}()
	}
	wg.Wait()

	selected := r.Selected()
	active := 0
	for _, s := range r.Snapshot().Selectors {
		if s.Active {
			active++
			if s.Timeframe != selected.String() {
				t.Errorf("active selector %q does not match selected %q", s.Timeframe, selected)
			}
		}
	}
	if active != 1 {
		t.Errorf("%d selectors active, want 1", active)
	}
}

func TestHighlightActive_MatchesRawAttribute(t *testing.T) {
	doc := NewCustomDocument(nil, []Selector{
		{Timeframe: "daily", Label: "Daily", Active: true},
		{Timeframe: "weekly", Label: "Weekly"},
		{Timeframe: "weekly", Label: "This week"},
		{Timeframe: "yearly", Label: "Yearly", Active: true},
	})
	r := NewRenderer(&stubSource{}, doc)

	r.HighlightActive(domain.Weekly)

	want := []bool{false, true, true, false}
	for i, s := range r.Snapshot().Selectors {
		if s.Active != want[i] {
			t.Errorf("selector %d (%s) active = %v, want %v", i, s.Timeframe, s.Active, want[i])
		}
	}
	if r.Selected() != domain.DefaultTimeframe {
		t.Errorf("HighlightActive changed the selected timeframe to %q", r.Selected())
	}
}

func TestRender_DuplicateCardWritesFirstOnly(t *testing.T) {
	doc := NewCustomDocument([]Card{
		{ID: "work", Title: "Work"},
		{ID: "work", Title: "Work (copy)"},
	}, nil)
	r := NewRenderer(&stubSource{ds: workDataset()}, doc)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cards := r.Snapshot().Cards
	if cards[0].Current != "10hrs" {
		t.Errorf("first card current = %q, want 10hrs", cards[0].Current)
	}
	if cards[1].Current != PlaceholderCurrent {
		t.Errorf("second card current = %q, want placeholder", cards[1].Current)
	}
}

func TestPreview_LeavesStateUntouched(t *testing.T) {
	r := loadedRenderer(t, workDataset())
	before := r.Snapshot()

	view := r.Preview(domain.Daily)

	work := cardByID(t, view.Cards, "work")
	if work.Current != "5hrs" || work.Previous != "Yesterday - 7hrs" {
		t.Errorf("preview work card = %+v, want daily values", work)
	}
	for _, s := range view.Selectors {
		if s.Active != (s.Timeframe == "daily") {
			t.Errorf("preview selector %q active = %v", s.Timeframe, s.Active)
		}
	}
	if view.Selected != domain.Daily {
		t.Errorf("preview selected = %q, want daily", view.Selected)
	}

	if after := r.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("preview changed shared state:\nbefore %+v\nafter  %+v", before, after)
	}
}
