// internal/game/chat.go
//
// Turn end and room chat.

package game

import (
	"strings"

	"github.com/robalobadob/hexsettlers/internal/player"
)

func (g *Game) endTurn(p *player.Player) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}

	p.EndTurn()
	var events []Event
	if o := g.State.TradeOffer; o != nil {
		events = append(events, broadcast(EvTradeClosed, TradeClosed{TradeID: o.ID, Reason: ClosedCancelled}))
	}
	g.State.TradeOffer = nil
	g.State.FreeRoads = 0
	g.State.Rolled = false
	g.State.Turns++
	g.setTurn((g.State.TurnIndex + 1) % len(g.Players))

	return append(events, broadcast(EvTurnEnded, TurnEnded{PlayerID: p.ID, Next: g.State.CurrentPlayer})), nil
}

// sendMessage is accepted in every phase, including the lobby and after the
// game is over.
func (g *Game) sendMessage(p *player.Player, text string) ([]Event, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if r := []rune(text); len(r) > ChatMaxLength {
		text = string(r[:ChatMaxLength])
	}

	msg := ChatMessage{
		Sender:     p.Name,
		ColorIndex: p.ColorIndex,
		Text:       text,
		Timestamp:  g.now().UnixMilli(),
	}
	g.State.Chat = append(g.State.Chat, msg)
	if over := len(g.State.Chat) - ChatHistory; over > 0 {
		g.State.Chat = append([]ChatMessage(nil), g.State.Chat[over:]...)
	}
	return []Event{broadcast(EvChatMessage, msg)}, nil
}
