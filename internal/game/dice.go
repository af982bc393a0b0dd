// internal/game/dice.go
//
// Dice, production and the robber.
//
// A roll of 7 produces nothing and moves the game to robber placement; any
// other total pays every settlement (1) and city (2) on a matching tile,
// except the tile under the robber.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/board"
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

// RobberRoll is the total that triggers robber placement.
const RobberRoll = 7

func (g *Game) rollDice(p *player.Player) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	if g.State.Rolled {
		return nil, ErrAlreadyRolled
	}

	d1, d2 := g.rng.Intn(6)+1, g.rng.Intn(6)+1
	total := d1 + d2
	g.State.Dice = [2]int{d1, d2}
	g.State.Rolled = true

	events := []Event{broadcast(EvDiceRolled, DiceRolled{PlayerID: p.ID, Dice: g.State.Dice, Total: total})}
	if total == RobberRoll {
		g.State.Stage = RobberPlacement{}
		return append(events, g.phaseEvent()), nil
	}
	if gains := g.produce(total); len(gains) > 0 {
		events = append(events, broadcast(EvProduced, Produced{Gains: gains}))
	}
	return events, nil
}

// produce credits every building on tiles numbered total and returns the
// gains per player id.
func (g *Game) produce(total int) map[string]resource.Bundle {
	gains := map[string]resource.Bundle{}
	for i := range g.Board.Tiles {
		t := &g.Board.Tiles[i]
		if !t.HasToken() || t.Number != total || t.ID == g.Board.Robber {
			continue
		}
		for _, n := range g.Board.IntersectionsOfTile(t.ID) {
			owner := g.Player(n.Owner)
			if owner == nil {
				continue
			}
			amount := 1
			if n.Building == board.City {
				amount = 2
			}
			if owner.AddResources(t.Resource, amount) != nil {
				continue
			}
			if gains[owner.ID] == nil {
				gains[owner.ID] = resource.Bundle{}
			}
			gains[owner.ID][t.Resource] += amount
		}
	}
	return gains
}

func (g *Game) moveRobber(p *player.Player, tileID int) ([]Event, error) {
	if _, ok := g.State.Stage.(RobberPlacement); !ok {
		return nil, ErrIllegalPhase
	}
	if err := g.Board.MoveRobber(tileID); err != nil {
		return nil, rejectBoard(err)
	}
	g.State.Stage = Playing{}

	moved := RobberMoved{PlayerID: p.ID, TileID: tileID}
	var events []Event

	var victims []*player.Player
	seen := map[string]bool{}
	for _, n := range g.Board.IntersectionsOfTile(tileID) {
		if n.Owner == "" || n.Owner == p.ID || seen[n.Owner] {
			continue
		}
		seen[n.Owner] = true
		if v := g.Player(n.Owner); v != nil {
			victims = append(victims, v)
		}
	}
	if len(victims) > 0 {
		victim := victims[g.rng.Intn(len(victims))]
		moved.VictimID = victim.ID
		if held := victim.HeldKinds(); len(held) > 0 {
			kind := held[g.rng.Intn(len(held))]
			victim.Take(kind, 1)
			_ = p.AddResources(kind, 1)
			events = append(events, private(EvResourceStolen,
				ResourceStolen{ThiefID: p.ID, VictimID: victim.ID, Kind: kind}, p.ID, victim.ID))
		}
	}

	return append([]Event{broadcast(EvRobberMoved, moved), g.phaseEvent()}, events...), nil
}
