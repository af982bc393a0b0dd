// internal/room/room.go
//
// One live room: the single writer in front of a game.Game.
// Every mutation runs under the room mutex and the snapshot is taken under
// the same lock. Publication is ordered by a second mutex that is acquired
// before the room mutex is released, so clients see states in commit order
// while the next action is already free to run.

package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/hexsettlers/internal/game"
)

// Join errors.
var (
	ErrWrongPassword = errors.New("wrong room password")
	ErrInvalidName   = errors.New("name must be 1-24 characters")
)

// MaxNameLength bounds display names.
const MaxNameLength = 24

// Publisher fans a committed state out to a room's clients. Calls for one
// room never overlap and arrive in commit order.
type Publisher interface {
	Publish(roomID string, res Result)
}

// Room serializes access to one game.
type Room struct {
	mu           sync.Mutex
	pub          sync.Mutex // held from commit until fan-out is done
	id           string
	game         *game.Game
	passwordHash []byte
	createdAt    time.Time
	lastActive   time.Time
	closed       bool
	archived     bool
	archiver     Archiver
	publisher    Publisher
	now          func() time.Time
}

// Result is the outcome of an accepted action or seat change.
type Result struct {
	Snapshot game.Snapshot
	Events   []game.Event
	Finished bool
}

// ID returns the room id.
func (rm *Room) ID() string { return rm.id }

// Summary describes the room for listings.
func (rm *Room) Summary() Summary {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return Summary{
		ID:        rm.id,
		Phase:     rm.game.Phase(),
		Players:   len(rm.game.Players),
		Private:   rm.passwordHash != nil,
		CreatedAt: rm.createdAt,
	}
}

// Snapshot returns the current state.
func (rm *Room) Snapshot() game.Snapshot {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.game.Snapshot()
}

// Seated reports whether playerID holds a seat.
func (rm *Room) Seated(playerID string) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.game.Player(playerID) != nil
}

// Join seats a new participant and returns its generated player id.
func (rm *Room) Join(name, password string) (string, game.Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxNameLength {
		return "", game.Snapshot{}, ErrInvalidName
	}
	if rm.passwordHash != nil && bcrypt.CompareHashAndPassword(rm.passwordHash, []byte(password)) != nil {
		return "", game.Snapshot{}, ErrWrongPassword
	}

	id := uuid.NewString()
	rm.mu.Lock()
	if rm.closed {
		rm.mu.Unlock()
		return "", game.Snapshot{}, ErrRoomNotFound
	}
	if _, err := rm.game.AddPlayer(id, name); err != nil {
		rm.mu.Unlock()
		return "", game.Snapshot{}, err
	}
	rm.lastActive = rm.now()
	snap := rm.game.Snapshot()
	rm.publishAndUnlock(Result{Snapshot: snap})

	log.Info().Str("room", rm.id).Str("player", id).Str("name", name).Msg("player joined")
	return id, snap, nil
}

// Leave frees the seat if the game has not started. It reports whether the
// seat was removed and whether the room is now empty.
func (rm *Room) Leave(playerID string) (removed, empty bool) {
	rm.mu.Lock()
	removed = rm.game.RemovePlayer(playerID)
	if !removed {
		rm.mu.Unlock()
		return false, false
	}
	empty = len(rm.game.Players) == 0
	rm.publishAndUnlock(Result{Snapshot: rm.game.Snapshot()})
	log.Info().Str("room", rm.id).Str("player", playerID).Msg("player left lobby")
	return true, empty
}

// Submit applies one action for playerID. Rejections leave the room
// untouched and are returned as errors; callers report them privately.
func (rm *Room) Submit(ctx context.Context, playerID string, act game.Action) (Result, error) {
	rm.mu.Lock()
	if rm.closed {
		rm.mu.Unlock()
		return Result{}, ErrRoomNotFound
	}
	events, err := rm.game.Apply(playerID, act)
	if err != nil {
		rm.mu.Unlock()
		lvl := log.Debug()
		if !game.IsRejection(err) {
			lvl = log.Warn()
		}
		lvl.Str("room", rm.id).Str("player", playerID).Str("action", string(act.Type)).
			Str("reason", string(game.Classify(err))).Err(err).Msg("action rejected")
		return Result{}, err
	}
	rm.lastActive = rm.now()
	res := Result{Snapshot: rm.game.Snapshot(), Events: events}
	if rm.game.Finished() && !rm.archived {
		rm.archived = true
		res.Finished = true
	}
	rm.publishAndUnlock(res)

	log.Debug().Str("room", rm.id).Str("player", playerID).Str("action", string(act.Type)).
		Int("events", len(events)).Msg("action applied")

	if res.Finished {
		log.Info().Str("room", rm.id).Str("winner", res.Snapshot.GameState.Winner).Msg("game over")
		if rm.archiver != nil {
			if err := rm.archiver.Archive(ctx, res.Snapshot); err != nil {
				log.Warn().Err(err).Str("room", rm.id).Msg("archive match")
			}
		}
	}
	return res, nil
}

// publishAndUnlock is called with rm.mu held. It takes the publish lock
// before releasing rm.mu, then hands res to the publisher.
func (rm *Room) publishAndUnlock(res Result) {
	p := rm.publisher
	rm.pub.Lock()
	rm.mu.Unlock()
	defer rm.pub.Unlock()
	if p != nil {
		p.Publish(rm.id, res)
	}
}

// Observe calls fn with the current snapshot inside the publish order: no
// publication of this room runs concurrently with fn, and every later one
// carries a newer state. Use it to attach a client and send its first state.
func (rm *Room) Observe(fn func(game.Snapshot)) {
	rm.mu.Lock()
	snap := rm.game.Snapshot()
	rm.pub.Lock()
	rm.mu.Unlock()
	defer rm.pub.Unlock()
	fn(snap)
}

func (rm *Room) setPublisher(p Publisher) {
	rm.mu.Lock()
	rm.publisher = p
	rm.mu.Unlock()
}

// closeIf marks the room closed when cond holds for the current game.
// Closed rooms refuse joins and actions.
func (rm *Room) closeIf(cond func(g *game.Game, lastActive time.Time) bool) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if !rm.closed && cond(rm.game, rm.lastActive) {
		rm.closed = true
	}
	return rm.closed
}
