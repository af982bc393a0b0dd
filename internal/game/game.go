// internal/game/game.go
//
// Room construction and lobby membership.
// Responsibilities:
//   - Build a fresh game: shuffled board, shuffled development deck.
//   - Add and remove players while the room is still waiting.
//   - Small lookups shared by the rule files.

package game

import (
	"time"

	"github.com/robalobadob/hexsettlers/internal/board"
	"github.com/robalobadob/hexsettlers/internal/player"
)

// deckCounts is the development deck composition (25 cards).
var deckCounts = []struct {
	kind  player.CardKind
	count int
}{
	{player.Knight, 14},
	{player.VictoryPoint, 5},
	{player.RoadBuilding, 2},
	{player.YearOfPlenty, 2},
	{player.Monopoly, 2},
}

// New creates a waiting room whose board layout, deck order, seat order,
// dice and steals all draw from rng.
func New(roomID string, rng Rand) *Game {
	g := &Game{
		RoomID:  roomID,
		Board:   board.Generate(rng),
		Players: []*player.Player{},
		rng:     rng,
		now:     time.Now,
	}
	for _, c := range deckCounts {
		for i := 0; i < c.count; i++ {
			g.Deck = append(g.Deck, c.kind)
		}
	}
	rng.Shuffle(len(g.Deck), func(i, j int) { g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i] })

	g.State = State{
		Stage:       Waiting{},
		LargestArmy: Bonus{Size: ArmyThreshold},
		LongestRoad: Bonus{Size: RoadThreshold},
		Chat:        []ChatMessage{},
	}
	return g
}

// SetClock replaces the chat timestamp source.
func (g *Game) SetClock(now func() time.Time) { g.now = now }

// AddPlayer seats a new player. Adding an id that is already seated is a no-op.
func (g *Game) AddPlayer(id, name string) (*player.Player, error) {
	if p := g.Player(id); p != nil {
		return p, nil
	}
	if _, ok := g.State.Stage.(Waiting); !ok {
		return nil, ErrNotInLobby
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}
	p := player.New(id, name, len(g.Players))
	g.Players = append(g.Players, p)
	return p, nil
}

// RemovePlayer drops a player while the room is waiting. After the game has
// started seats are kept so the turn order stays intact; it reports whether
// the player was removed.
func (g *Game) RemovePlayer(id string) bool {
	if _, ok := g.State.Stage.(Waiting); !ok {
		return false
	}
	for i, p := range g.Players {
		if p.ID == id {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			for j := i; j < len(g.Players); j++ {
				g.Players[j].ColorIndex = j
			}
			return true
		}
	}
	return false
}

// Player returns the seated player with id, or nil.
func (g *Game) Player(id string) *player.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Phase is the wire name of the current stage.
func (g *Game) Phase() Phase { return g.State.Stage.Phase() }

// Finished reports whether the game has reached GameOver.
func (g *Game) Finished() bool {
	_, ok := g.State.Stage.(GameOver)
	return ok
}

func (g *Game) current() *player.Player { return g.Player(g.State.CurrentPlayer) }

func (g *Game) setTurn(i int) {
	g.State.TurnIndex = i
	g.State.CurrentPlayer = g.Players[i].ID
}
