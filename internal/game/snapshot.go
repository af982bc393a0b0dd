// internal/game/snapshot.go
//
// Read-only projection of a room, broadcast after every accepted action.
// The snapshot is a deep copy, so it can be serialized after the room lock
// is released. Clients get it through For, which hides the kinds of the
// development cards other players hold.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/board"
	"github.com/robalobadob/hexsettlers/internal/player"
)

// StateView is the wire form of State.
type StateView struct {
	Phase         Phase         `json:"phase"`
	SetupSubPhase SetupStep     `json:"setupSubPhase,omitempty"`
	TurnIndex     int           `json:"turnIndex"`
	Turns         int           `json:"turns"`
	CurrentPlayer string        `json:"currentPlayer"`
	Dice          [2]int        `json:"dice"`
	HasRolled     bool          `json:"hasRolled"`
	FreeRoads     int           `json:"freeRoads"`
	TradeOffer    *TradeOffer   `json:"tradeOffer"`
	Winner        string        `json:"winner,omitempty"`
	LargestArmy   Bonus         `json:"largestArmy"`
	LongestRoad   Bonus         `json:"longestRoad"`
	ChatMessages  []ChatMessage `json:"chatMessages"`
	DevCardsLeft  int           `json:"devCardsLeft"`
}

// Snapshot is the full room state sent to clients.
type Snapshot struct {
	RoomID    string          `json:"roomId"`
	Players   []player.Player `json:"players"`
	Board     board.State     `json:"board"`
	GameState StateView       `json:"gameState"`
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := g.State
	view := StateView{
		Phase:         s.Stage.Phase(),
		TurnIndex:     s.TurnIndex,
		Turns:         s.Turns,
		CurrentPlayer: s.CurrentPlayer,
		Dice:          s.Dice,
		HasRolled:     s.Rolled,
		FreeRoads:     s.FreeRoads,
		Winner:        s.Winner,
		LargestArmy:   s.LargestArmy,
		LongestRoad:   s.LongestRoad,
		ChatMessages:  append([]ChatMessage{}, s.Chat...),
		DevCardsLeft:  len(g.Deck),
	}
	if st, ok := s.Stage.(Setup); ok {
		view.SetupSubPhase = st.Step
	}
	if o := s.TradeOffer; o != nil {
		c := *o
		c.Give = copyBundle(o.Give)
		c.Get = copyBundle(o.Get)
		c.DeclinedBy = append([]string(nil), o.DeclinedBy...)
		view.TradeOffer = &c
	}

	players := make([]player.Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.Clone()
	}
	return Snapshot{
		RoomID:    g.RoomID,
		Players:   players,
		Board:     g.Board.State(),
		GameState: view,
	}
}

// For returns the snapshot as seen by viewer: unplayed development cards of
// every other seat keep their count and flags but show player.Hidden. An
// unseated viewer sees every hand hidden.
func (s Snapshot) For(viewer string) Snapshot {
	out := s
	out.Players = make([]player.Player, len(s.Players))
	for i, p := range s.Players {
		if p.ID != viewer && len(p.DevCards) > 0 {
			cards := make([]player.DevCard, len(p.DevCards))
			for j, c := range p.DevCards {
				c.Kind = player.Hidden
				cards[j] = c
			}
			p.DevCards = cards
		}
		out.Players[i] = p
	}
	return out
}
