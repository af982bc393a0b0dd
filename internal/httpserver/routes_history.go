// internal/httpserver/routes_history.go
//
// Finished-match history.
//   - GET /history       : most recent matches (?limit=, default 20, max 100)
//   - GET /history/{id}  : one match with its per-seat results

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hexsettlers/internal/history"
)

const maxHistoryLimit = 100

func (s *Server) mountHistory(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.handleRecentMatches)
		r.Get("/{id}", s.handleMatch)
	})
}

func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", "")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	matches, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id", "")
		return
	}
	m, err := s.history.Get(r.Context(), id)
	switch {
	case errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, "match_not_found", "")
	case err != nil:
		log.Error().Err(err).Int64("match", id).Msg("history get")
		writeError(w, http.StatusInternalServerError, "db_error", "")
	default:
		writeJSON(w, http.StatusOK, m)
	}
}
