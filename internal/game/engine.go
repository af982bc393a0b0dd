// internal/game/engine.go
//
// Action dispatch for a single room.
// Responsibilities:
//   - Resolve the acting player and route the action to its rule.
//   - Guarantee reject-without-mutation: every rule validates fully before
//     its first write.
//
// Notes:
//   - Apply is not safe for concurrent use; the room layer serializes calls.
//   - Turn-bound actions check the turn before the phase, so a player acting
//     out of turn always sees not_your_turn.

package game

// Apply validates and applies act on behalf of actorID. On error the game is
// unchanged and no events are produced.
func (g *Game) Apply(actorID string, act Action) ([]Event, error) {
	actor := g.Player(actorID)
	if actor == nil {
		return nil, ErrUnknownPlayer
	}

	switch act.Type {
	case ActStartGame:
		return g.startGame()
	case ActSendMessage:
		var p messagePayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		return g.sendMessage(actor, p.Message)
	case ActAcceptTrade, ActRejectTrade:
		var p tradeRefPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		if act.Type == ActAcceptTrade {
			return g.acceptTrade(actor, p.TradeID)
		}
		return g.rejectTrade(actor, p.TradeID)
	}

	if actorID != g.State.CurrentPlayer {
		if !isKnown(act.Type) {
			return nil, ErrUnknownAction
		}
		return nil, ErrNotYourTurn
	}

	switch act.Type {
	case ActBuildSettlement:
		var p intersectionPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		return g.buildSettlement(actor, p.IntersectionID)
	case ActBuildRoad:
		var p edgePayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		return g.buildRoad(actor, p.EdgeID)
	case ActBuildCity:
		var p intersectionPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		return g.buildCity(actor, p.IntersectionID)
	case ActRollDice:
		return g.rollDice(actor)
	case ActMoveRobber:
		var p robberPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		if p.TileID == nil {
			return nil, ErrBadPayload
		}
		return g.moveRobber(actor, *p.TileID)
	case ActOfferTrade:
		var p OfferPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		return g.offerTrade(actor, p)
	case ActBuyDevCard:
		return g.buyDevCard(actor)
	case ActPlayDevCard:
		var p playCardPayload
		if err := decode(act.Payload, &p); err != nil {
			return nil, err
		}
		if p.CardIndex == nil {
			return nil, ErrBadPayload
		}
		return g.playDevCard(actor, *p.CardIndex, p.Target)
	case ActEndTurn:
		return g.endTurn(actor)
	}
	return nil, ErrUnknownAction
}

func isKnown(t ActionType) bool {
	switch t {
	case ActBuildSettlement, ActBuildRoad, ActBuildCity, ActRollDice,
		ActMoveRobber, ActOfferTrade, ActBuyDevCard, ActPlayDevCard, ActEndTurn:
		return true
	}
	return false
}

func (g *Game) inPlay() bool {
	_, ok := g.State.Stage.(Playing)
	return ok
}
