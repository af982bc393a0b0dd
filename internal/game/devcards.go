// internal/game/devcards.go
//
// Development cards: buying from the shuffled deck and playing from hand.
//
// Cards bought this turn cannot be played until the owner's next turn,
// except victory point cards. Playing is allowed during robber placement so
// a knight can be played after rolling a 7.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

func (g *Game) buyDevCard(p *player.Player) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	if len(g.Deck) == 0 {
		return nil, ErrDeckEmpty
	}
	if !p.CanAfford(resource.DevCardCost) {
		return nil, ErrInsufficientResources
	}

	p.Pay(resource.DevCardCost)
	kind := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	p.AddCard(kind)

	left := len(g.Deck)
	return []Event{
		broadcast(EvDevCardBought, DevCardBought{PlayerID: p.ID, Left: left}),
		private(EvDevCardBought, DevCardBought{PlayerID: p.ID, Kind: kind, Left: left}, p.ID),
	}, nil
}

func (g *Game) playDevCard(p *player.Player, index int, target CardTarget) ([]Event, error) {
	switch g.State.Stage.(type) {
	case Playing, RobberPlacement:
	default:
		return nil, ErrIllegalPhase
	}
	if !p.Playable(index) {
		return nil, ErrCardNotPlayable
	}
	kind := p.DevCards[index].Kind
	if kind == player.RoadBuilding && MaxRoads-p.Roads-g.State.FreeRoads <= 0 {
		return nil, ErrNoPiecesLeft
	}

	p.PlayCard(index)
	events := []Event{broadcast(EvDevCardPlayed, DevCardPlayed{PlayerID: p.ID, Kind: kind})}

	switch kind {
	case player.Knight:
		p.KnightsPlayed++
		if _, ok := g.State.Stage.(RobberPlacement); !ok {
			g.State.Stage = RobberPlacement{}
			events = append(events, g.phaseEvent())
		}
		events = append(events, g.checkLargestArmy(p)...)
	case player.VictoryPoint:
		p.VictoryPoints++
		events = append(events, g.checkWin(p)...)
	case player.RoadBuilding:
		grant := FreeRoadsPerCard
		if room := MaxRoads - p.Roads - g.State.FreeRoads; room < grant {
			grant = room
		}
		g.State.FreeRoads += grant
	case player.YearOfPlenty:
		kinds := target.Resources
		if len(kinds) != 2 || !kinds[0].Valid() || !kinds[1].Valid() {
			kinds = []resource.Kind{g.randomKind(), g.randomKind()}
		}
		gain := resource.Bundle{}
		for _, k := range kinds {
			gain[k]++
		}
		p.Credit(gain)
		events = append(events, private(EvProduced, Produced{Gains: map[string]resource.Bundle{p.ID: gain}}, p.ID))
	case player.Monopoly:
		if target.Resource.Valid() {
			taken := 0
			for _, other := range g.Players {
				if other.ID != p.ID {
					taken += other.Take(target.Resource, other.Resources[target.Resource])
				}
			}
			if taken > 0 {
				_ = p.AddResources(target.Resource, taken)
			}
		}
	}
	return events, nil
}

func (g *Game) randomKind() resource.Kind {
	return resource.Tradable[g.rng.Intn(len(resource.Tradable))]
}
