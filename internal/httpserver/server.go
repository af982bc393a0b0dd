// internal/httpserver/server.go
//
// HTTP server wiring for the hexsettlers backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     zerolog access log).
//   - Public endpoints: "/", "/health", room listing, create and join.
//   - Seat endpoints (require a seat token): snapshot, actions, leave, ws.
//   - Match history endpoints backed by SQLite.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The websocket route is mounted outside the timeout group; the
//     connection outlives any single request budget.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hexsettlers/internal/history"
	"github.com/robalobadob/hexsettlers/internal/room"
	"github.com/robalobadob/hexsettlers/internal/session"
	"github.com/robalobadob/hexsettlers/internal/ws"
)

// Options carries the server's collaborators.
type Options struct {
	Rooms         *room.Registry
	Hub           *ws.Hub
	Signer        *session.Signer
	History       *history.Store // optional
	ClientOrigin  string
	ActionTimeout time.Duration
	SecureCookies bool
}

// Server bundles the router and its collaborators.
type Server struct {
	r       *chi.Mux
	rooms   *room.Registry
	hub     *ws.Hub
	signer  *session.Signer
	history *history.Store
	origin  string
	secure  bool
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	if o.Hub == nil {
		o.Hub = ws.NewHub()
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.ActionTimeout <= 0 {
		o.ActionTimeout = 10 * time.Second
	}
	s := &Server{
		r:       chi.NewRouter(),
		rooms:   o.Rooms,
		hub:     o.Hub,
		signer:  o.Signer,
		history: o.History,
		origin:  o.ClientOrigin,
		secure:  o.SecureCookies,
	}
	if s.rooms != nil {
		s.rooms.SetPublisher(fanout{hub: s.hub})
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)      // add X-Request-ID
	s.r.Use(chimw.RealIP)         // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)        // zerolog access log
	s.r.Use(chimw.Recoverer)      // recover from panics
	s.r.Use(cors(o.ClientOrigin)) // credentials-friendly CORS
	s.r.With(s.requireSeat).Get("/rooms/{id}/ws", s.handleSocket)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(o.ActionTimeout)) // bound handler time
		r.Use(jsonContentType)                // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"hexsettlers","endpoints":["/health","/rooms","/history"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountRooms(r)
		if s.history != nil {
			s.mountHistory(r)
		}

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorBody{Error: code, Detail: detail})
}
