// internal/room/registry.go
//
// In-memory room registry.
// Characteristics:
//   - Rooms keyed by a 6-character uppercase id.
//   - Concurrency-safe via RWMutex (lookups concurrent, create/delete exclusive).
//   - Each room owns its own seeded *rand.Rand; ROOM_SEED makes every room
//     reproducible, 0 seeds from the clock.
//   - State is lost when the process restarts; finished matches go to the
//     Archiver.
//   - Empty lobbies close on the last leave; rooms idle past a TTL are swept.

package room

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/hexsettlers/internal/game"
)

// ErrRoomNotFound is returned for unknown room ids.
var ErrRoomNotFound = errors.New("room not found")

// IDLength is the length of generated room ids.
const IDLength = 6

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Archiver records finished matches.
type Archiver interface {
	Archive(ctx context.Context, snap game.Snapshot) error
}

// Registry owns every live room.
type Registry struct {
	mu        sync.RWMutex
	rooms     map[string]*Room
	seed      int64
	created   int64
	ids       *rand.Rand
	archiver  Archiver
	publisher Publisher
	now       func() time.Time
}

// NewRegistry returns an empty registry. seed 0 seeds rooms from the clock.
// archiver may be nil.
func NewRegistry(seed int64, archiver Archiver) *Registry {
	idSeed := seed
	if idSeed == 0 {
		idSeed = time.Now().UnixNano()
	}
	return &Registry{
		rooms:    make(map[string]*Room),
		seed:     seed,
		ids:      rand.New(rand.NewSource(idSeed)),
		archiver: archiver,
		now:      time.Now,
	}
}

// Summary is the lobby listing entry of a room.
type Summary struct {
	ID        string     `json:"id"`
	Phase     game.Phase `json:"phase"`
	Players   int        `json:"players"`
	Private   bool       `json:"private"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Create opens a new waiting room. A non-empty password makes it private.
func (r *Registry) Create(password string) (*Room, error) {
	var hash []byte
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	r.created++
	seed := r.seed + r.created
	if r.seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := r.now()
	rm := &Room{
		id:           id,
		game:         game.New(id, rand.New(rand.NewSource(seed))),
		passwordHash: hash,
		createdAt:    now.UTC(),
		lastActive:   now,
		archiver:     r.archiver,
		publisher:    r.publisher,
		now:          r.now,
	}
	r.rooms[id] = rm
	log.Info().Str("room", id).Bool("private", hash != nil).Msg("room created")
	return rm, nil
}

// Get looks up a room by id.
func (r *Registry) Get(id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rm, ok := r.rooms[id]; ok {
		return rm, nil
	}
	return nil, ErrRoomNotFound
}

// SetPublisher installs the fan-out used by every current and future room.
func (r *Registry) SetPublisher(p Publisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publisher = p
	for _, rm := range r.rooms {
		rm.setPublisher(p)
	}
}

// List returns every room, newest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		rooms = append(rooms, rm)
	}
	r.mu.RUnlock()

	out := make([]Summary, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, rm.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Leave frees a seat and deletes the room once a waiting room is empty. It
// reports whether the seat was removed.
func (r *Registry) Leave(id, playerID string) (bool, error) {
	rm, err := r.Get(id)
	if err != nil {
		return false, err
	}
	removed, empty := rm.Leave(playerID)
	if !empty {
		return removed, nil
	}

	// A join may have landed since; re-check under both locks.
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[id] == rm && rm.closeIf(emptyLobby) {
		delete(r.rooms, id)
		log.Info().Str("room", id).Msg("empty room closed")
	}
	return removed, nil
}

func emptyLobby(g *game.Game, _ time.Time) bool {
	return g.Phase() == game.PhaseWaiting && len(g.Players) == 0
}

// Sweep closes and drops every room with no join or accepted action within
// idle. It returns how many rooms were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	stale := func(_ *game.Game, last time.Time) bool { return last.Before(cutoff) }

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, rm := range r.rooms {
		if rm.closeIf(stale) {
			delete(r.rooms, id)
			n++
			log.Info().Str("room", id).Msg("idle room swept")
		}
	}
	return n
}

// RunJanitor sweeps idle rooms every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep(idle)
		}
	}
}

// newID draws an unused id. Callers hold r.mu.
func (r *Registry) newID() string {
	for {
		b := make([]byte, IDLength)
		for i := range b {
			b[i] = idAlphabet[r.ids.Intn(len(idAlphabet))]
		}
		if _, taken := r.rooms[string(b)]; !taken {
			return string(b)
		}
	}
}
