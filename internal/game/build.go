// internal/game/build.go
//
// Settlement, road and city placement.
// During setup placements are free and follow the setup step; during play
// they are paid, must connect to the player's network, and are capped by
// the player's remaining pieces. Road Building credit makes roads free.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

func (g *Game) buildSettlement(p *player.Player, id string) ([]Event, error) {
	switch s := g.State.Stage.(type) {
	case Setup:
		return g.setupSettlement(p, s, id)
	case Playing:
	default:
		return nil, ErrIllegalPhase
	}

	if p.Settlements >= MaxSettlements {
		return nil, ErrNoPiecesLeft
	}
	if err := g.Board.CheckSettlement(p.ID, id, true); err != nil {
		return nil, rejectBoard(err)
	}
	if !p.CanAfford(resource.SettlementCost) {
		return nil, ErrInsufficientResources
	}

	_ = g.Board.PlaceSettlement(p.ID, id, true)
	p.Pay(resource.SettlementCost)
	p.Settlements++
	p.VictoryPoints++

	events := []Event{broadcast(EvSettlementBuilt, Placement{PlayerID: p.ID, Target: id})}
	events = append(events, g.checkWin(p)...)
	if g.inPlay() {
		events = append(events, g.recheckLongestRoad()...)
	}
	return events, nil
}

func (g *Game) buildRoad(p *player.Player, edgeID string) ([]Event, error) {
	switch s := g.State.Stage.(type) {
	case Setup:
		return g.setupRoad(p, s, edgeID)
	case Playing:
	default:
		return nil, ErrIllegalPhase
	}

	if p.Roads >= MaxRoads {
		return nil, ErrNoPiecesLeft
	}
	if err := g.Board.CheckRoad(p.ID, edgeID, ""); err != nil {
		return nil, rejectBoard(err)
	}
	free := g.State.FreeRoads > 0
	if !free && !p.CanAfford(resource.RoadCost) {
		return nil, ErrInsufficientResources
	}

	_ = g.Board.PlaceRoad(p.ID, edgeID, "")
	if free {
		g.State.FreeRoads--
	} else {
		p.Pay(resource.RoadCost)
	}
	p.Roads++

	events := []Event{broadcast(EvRoadBuilt, Placement{PlayerID: p.ID, Target: edgeID, Free: free})}
	return append(events, g.checkLongestRoad(p)...), nil
}

func (g *Game) buildCity(p *player.Player, id string) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	if p.Cities >= MaxCities {
		return nil, ErrNoPiecesLeft
	}
	if err := g.Board.CheckCity(p.ID, id); err != nil {
		return nil, rejectBoard(err)
	}
	if !p.CanAfford(resource.CityCost) {
		return nil, ErrInsufficientResources
	}

	_ = g.Board.UpgradeCity(p.ID, id)
	p.Pay(resource.CityCost)
	p.Settlements--
	p.Cities++
	p.VictoryPoints++

	events := []Event{broadcast(EvCityBuilt, Placement{PlayerID: p.ID, Target: id})}
	return append(events, g.checkWin(p)...), nil
}
