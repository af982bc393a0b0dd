// internal/game/setup.go
//
// Game start and the two snake-draft setup rounds.
//
// Round 1 runs seats 0..n-1, round 2 runs n-1..0. Each setup turn is one
// free settlement followed by one free road touching it. Round-2
// settlements grant one of each adjacent producing tile's resource.

package game

import "github.com/robalobadob/hexsettlers/internal/player"

func (g *Game) startGame() ([]Event, error) {
	if _, ok := g.State.Stage.(Waiting); !ok {
		return nil, ErrIllegalPhase
	}
	if len(g.Players) < MinPlayers {
		return nil, ErrTooFewPlayers
	}

	g.rng.Shuffle(len(g.Players), func(i, j int) { g.Players[i], g.Players[j] = g.Players[j], g.Players[i] })
	order := make([]string, len(g.Players))
	for i, p := range g.Players {
		p.ColorIndex = i
		p.ResetResources()
		order[i] = p.ID
	}
	g.State.Stage = Setup{Round: 1, Step: StepSettlement}
	g.setTurn(0)

	return []Event{
		broadcast(EvGameStarted, GameStarted{Order: order}),
		g.phaseEvent(),
	}, nil
}

func (g *Game) setupSettlement(p *player.Player, s Setup, id string) ([]Event, error) {
	if s.Step != StepSettlement {
		return nil, ErrWrongSetupStep
	}
	if p.Settlements >= MaxSettlements {
		return nil, ErrNoPiecesLeft
	}
	if err := g.Board.PlaceSettlement(p.ID, id, false); err != nil {
		return nil, rejectBoard(err)
	}
	p.Settlements++
	p.VictoryPoints++

	if s.Round == 2 {
		for _, t := range g.Board.TilesOfIntersection(id) {
			if t.Resource.Valid() {
				_ = p.AddResources(t.Resource, 1)
			}
		}
	}
	g.State.setupAnchor = id
	g.State.Stage = Setup{Round: s.Round, Step: StepRoad}

	return []Event{
		broadcast(EvSettlementBuilt, Placement{PlayerID: p.ID, Target: id, Free: true}),
		g.phaseEvent(),
	}, nil
}

func (g *Game) setupRoad(p *player.Player, s Setup, edgeID string) ([]Event, error) {
	if s.Step != StepRoad {
		return nil, ErrWrongSetupStep
	}
	if p.Roads >= MaxRoads {
		return nil, ErrNoPiecesLeft
	}
	if err := g.Board.PlaceRoad(p.ID, edgeID, g.State.setupAnchor); err != nil {
		return nil, rejectBoard(err)
	}
	p.Roads++
	g.State.setupAnchor = ""
	g.advanceSetup(s)

	return []Event{
		broadcast(EvRoadBuilt, Placement{PlayerID: p.ID, Target: edgeID, Free: true}),
		g.phaseEvent(),
	}, nil
}

// advanceSetup moves to the next setup turn after a road.
func (g *Game) advanceSetup(s Setup) {
	n := len(g.Players)
	i := g.State.TurnIndex
	switch {
	case s.Round == 1 && i < n-1:
		g.setTurn(i + 1)
		g.State.Stage = Setup{Round: 1, Step: StepSettlement}
	case s.Round == 1:
		// last seat goes again
		g.State.Stage = Setup{Round: 2, Step: StepSettlement}
	case i > 0:
		g.setTurn(i - 1)
		g.State.Stage = Setup{Round: 2, Step: StepSettlement}
	default:
		g.setTurn(0)
		g.State.Stage = Playing{}
		g.State.Rolled = false
	}
}

func (g *Game) phaseEvent() Event {
	pc := PhaseChanged{Phase: g.Phase(), CurrentPlayer: g.State.CurrentPlayer}
	if s, ok := g.State.Stage.(Setup); ok {
		pc.SetupSubPhase = s.Step
	}
	return broadcast(EvPhaseChanged, pc)
}
