// internal/game/bonus.go
//
// Largest Army, Longest Road and the win check.
//
// Both titles use the same contest: a tally only threatens the title when it
// strictly exceeds the stored size. The holder improving only raises the
// size; anyone else takes the title (and its 2 VP) from the previous holder.

package game

import "github.com/robalobadob/hexsettlers/internal/player"

func (g *Game) contest(b *Bonus, title string, p *player.Player, tally int) []Event {
	if tally <= b.Size {
		return nil
	}
	if b.Holder == p.ID {
		b.Size = tally
		return nil
	}

	prev := b.Holder
	if old := g.Player(prev); old != nil {
		old.VictoryPoints -= BonusPoints
	}
	b.Holder = p.ID
	b.Size = tally
	p.VictoryPoints += BonusPoints

	events := []Event{broadcast(EvBonusAwarded, BonusAwarded{Title: title, Holder: p.ID, Previous: prev, Size: tally})}
	return append(events, g.checkWin(p)...)
}

func (g *Game) checkLargestArmy(p *player.Player) []Event {
	return g.contest(&g.State.LargestArmy, TitleLargestArmy, p, p.KnightsPlayed)
}

func (g *Game) checkLongestRoad(p *player.Player) []Event {
	return g.contest(&g.State.LongestRoad, TitleLongestRoad, p, g.Board.LongestRoad(p.ID))
}

// recheckLongestRoad runs after a settlement that may have cut the holder's
// road. The holder keeps the title at its new length (never below the
// threshold) unless another player now strictly exceeds it.
func (g *Game) recheckLongestRoad() []Event {
	lr := &g.State.LongestRoad
	holder := g.Player(lr.Holder)
	if holder == nil {
		return nil
	}
	n := g.Board.LongestRoad(holder.ID)
	if n >= lr.Size {
		return nil
	}
	if n < RoadThreshold {
		n = RoadThreshold
	}
	lr.Size = n

	var events []Event
	for _, p := range g.Players {
		if p.ID != holder.ID {
			events = append(events, g.checkLongestRoad(p)...)
		}
	}
	return events
}

// checkWin ends the game when p reaches the winning score. Nothing happens
// during setup or once the game is over.
func (g *Game) checkWin(p *player.Player) []Event {
	switch g.State.Stage.(type) {
	case Playing, RobberPlacement:
	default:
		return nil
	}
	if p.VictoryPoints < WinPoints {
		return nil
	}
	g.State.Stage = GameOver{Winner: p.ID}
	g.State.Winner = p.ID
	g.State.TradeOffer = nil
	return []Event{
		broadcast(EvGameOver, GameOverPayload{Winner: p.ID, WinnerName: p.Name}),
		g.phaseEvent(),
	}
}
