package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/emiliopalmerini/timedash/internal/dashboard"
)

func render(t *testing.T, view dashboard.Snapshot, page bool) string {
	t.Helper()
	var buf bytes.Buffer
	c := Board(view)
	if page {
		c = Page(view)
	}
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestBoard_RendersCardsAndSelectors(t *testing.T) {
	view := dashboard.Snapshot{
		Cards: []dashboard.Card{
			{ID: "work", Title: "Work", Current: "10hrs", Previous: "Last Week - 8hrs"},
		},
		Selectors: []dashboard.Selector{
			{Timeframe: "daily", Label: "Daily"},
			{Timeframe: "weekly", Label: "Weekly", Active: true},
		},
	}

	html := render(t, view, false)

	for _, want := range []string{
		`<article class="activity-card work" id="card-work">`,
		`<p class="activity-current">10hrs</p>`,
		`<p class="activity-previous">Last Week - 8hrs</p>`,
		`class="timeframe-btn active" data-timeframe="weekly"`,
		`class="timeframe-btn" data-timeframe="daily"`,
		`hx-post="/timeframe/daily"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("board missing %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "<!DOCTYPE html>") {
		t.Errorf("board fragment should not contain a document header")
	}
}

func TestPage_WrapsBoard(t *testing.T) {
	html := render(t, dashboard.Snapshot{}, true)
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Errorf("page should start with doctype")
	}
	if !strings.Contains(html, `<section id="board"`) {
		t.Errorf("page missing board")
	}
}

func TestCard_EscapesText(t *testing.T) {
	view := dashboard.Snapshot{Cards: []dashboard.Card{
		{ID: "work", Title: "<b>Work</b>", Current: "1hrs", Previous: "-"},
	}}
	html := render(t, view, false)
	if strings.Contains(html, "<b>Work</b>") {
		t.Errorf("title was not escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;Work&lt;/b&gt;") {
		t.Errorf("escaped title missing:\n%s", html)
	}
}

func TestSelectors_EscapesTimeframeAttribute(t *testing.T) {
	view := dashboard.Snapshot{Selectors: []dashboard.Selector{
		{Timeframe: "we ek/<x>", Label: "Odd"},
	}}
	html := render(t, view, false)

	for _, want := range []string{
		`action="/timeframe/we%20ek%2F%3Cx%3E"`,
		`hx-post="/timeframe/we%20ek%2F%3Cx%3E"`,
		`data-timeframe="we ek/&lt;x&gt;"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("selectors missing %q\n%s", want, html)
		}
	}
}

func TestCard_EscapesIDInAttributes(t *testing.T) {
	view := dashboard.Snapshot{Cards: []dashboard.Card{
		{ID: `x" onclick="alert(1)`, Title: "Work", Current: "1hrs", Previous: "-"},
	}}
	html := render(t, view, false)

	if strings.Contains(html, `onclick="alert(1)"`) {
		t.Errorf("card id broke out of its attribute:\n%s", html)
	}
	if !strings.Contains(html, `id="card-x&#34; onclick=&#34;alert(1)"`) {
		t.Errorf("escaped id missing:\n%s", html)
	}
}
