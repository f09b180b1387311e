package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emiliopalmerini/timedash/internal/domain"
	"github.com/emiliopalmerini/timedash/internal/web/templates"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// ?timeframe= previews one timeframe for this request only; unknown
	// values fall back to the shared view.
	view := s.dashboard.Snapshot()
	if tf, err := domain.ParseTimeframe(r.URL.Query().Get("timeframe")); err == nil {
		view = s.dashboard.Preview(tf)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(view).Render(ctx, w); err != nil {
		s.logger.Error("render dashboard", "err", err)
	}
}

func (s *Server) handleSelectTimeframe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf := chi.URLParam(r, "timeframe")

	if err := s.dashboard.SelectTimeframe(ctx, tf); err != nil {
		s.logger.Debug("timeframe ignored", "timeframe", tf, "err", err)
	}

	if !IsHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Board(s.dashboard.Snapshot()).Render(ctx, w); err != nil {
		s.logger.Error("render board", "err", err)
	}
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	ds := s.dashboard.Dataset()
	if ds == nil {
		ds = domain.Dataset{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ds); err != nil {
		s.logger.Error("encode dataset", "err", err)
	}
}
