// internal/httpserver/auth.go
//
// Seat-token middleware and cookies.
// The token issued on create/join is accepted as a bearer header, a "token"
// query parameter (websocket clients) or the session cookie.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/hexsettlers/internal/session"
)

// ctxSeatKey is the context key type for the caller's seat claims.
type ctxSeatKey struct{}

// requireSeat enforces a valid seat token for the {id} room and injects its
// claims into the request context.
func (s *Server) requireSeat(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := session.FromRequest(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		claims, err := s.signer.Parse(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "")
			return
		}
		if id := chi.URLParam(r, "id"); id != "" && id != claims.RoomID {
			writeError(w, http.StatusForbidden, "wrong_room", "")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSeatKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// seat returns the claims injected by requireSeat.
func seat(r *http.Request) *session.Claims {
	c, _ := r.Context().Value(ctxSeatKey{}).(*session.Claims)
	return c
}

// setSeatCookie writes the seat token cookie with appropriate security attributes.
func (s *Server) setSeatCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}
