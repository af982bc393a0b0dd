// internal/session/session.go
//
// Seat tokens.
// Joining a room returns an HS256 JWT that binds the bearer to one seat
// (room id + player id). The transport resolves the acting player from this
// token only; a client can never name the actor itself.

package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for missing, malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid session token")

// CookieName is the cookie fallback for browsers that cannot set headers
// (websocket upgrades).
const CookieName = "hexsettlers_token"

// Claims identify one seat.
type Claims struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and verifies seat tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer using secret for HS256 and tokens valid for ttl.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign creates a token for the seat and returns it with its expiry.
func (s *Signer) Sign(roomID, playerID, name string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RoomID:   roomID,
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// Parse validates tok and returns its claims.
func (s *Signer) Parse(tok string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.RoomID == "" || claims.PlayerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FromRequest extracts a bearer token from the Authorization header, the
// "token" query parameter or the session cookie, in that order.
func FromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if q := r.URL.Query().Get("token"); q != "" {
		return q
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
