package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hexsettlers/internal/board"
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

func tileWithNumber(t *testing.T, b *board.Board, n int) *board.Tile {
	t.Helper()
	for i := range b.Tiles {
		if b.Tiles[i].Number == n {
			return &b.Tiles[i]
		}
	}
	t.Fatalf("no tile numbered %d", n)
	return nil
}

// expectedYield is what a building at id earns on a roll of total.
func expectedYield(b *board.Board, id string, total, perTile int) resource.Bundle {
	out := resource.Bundle{}
	for _, tile := range b.TilesOfIntersection(id) {
		if tile.HasToken() && tile.Number == total && tile.ID != b.Robber {
			out[tile.Resource] += perTile
		}
	}
	return out
}

func ledger(p *player.Player) resource.Bundle {
	out := resource.Bundle{}
	for k, v := range p.Resources {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

func TestRollDiceProduces(t *testing.T) {
	rng := &scriptRand{}
	g := playing(t, rng, "a", "b")
	tile := tileWithNumber(t, g.Board, 8)
	corners := g.Board.IntersectionsOfTile(tile.ID)

	require.NoError(t, g.Board.PlaceSettlement("a", corners[0].ID, false))
	require.NoError(t, g.Board.PlaceSettlement("b", corners[3].ID, false))
	require.NoError(t, g.Board.UpgradeCity("b", corners[3].ID))

	wantA := expectedYield(g.Board, corners[0].ID, 8, 1)
	wantB := expectedYield(g.Board, corners[3].ID, 8, 2)
	assert.Equal(t, 1, wantA[tile.Resource])
	assert.Equal(t, 2, wantB[tile.Resource])

	rng.ints = []int{2, 4} // 3 + 5
	events := mustApply(t, g, "a", Action{Type: ActRollDice})
	assert.Equal(t, [2]int{3, 5}, g.State.Dice)
	assert.True(t, g.State.Rolled)
	assert.True(t, hasEvent(events, EvProduced))
	assert.Equal(t, wantA, ledger(g.Player("a")))
	assert.Equal(t, wantB, ledger(g.Player("b")))

	rejected(t, g, "a", Action{Type: ActRollDice}, CodeIllegalPhase)
	rejected(t, g, "b", Action{Type: ActRollDice}, CodeNotYourTurn)
}

func TestRobberBlocksProduction(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	tile := tileWithNumber(t, g.Board, 8)
	c := g.Board.IntersectionsOfTile(tile.ID)[0]
	require.NoError(t, g.Board.PlaceSettlement("a", c.ID, false))
	g.Board.Robber = tile.ID

	gains := g.produce(8)
	assert.Equal(t, expectedYield(g.Board, c.ID, 8, 1), ledger(g.Player("a")))
	assert.Zero(t, gains["a"][tile.Resource], "robbed tile yields nothing")
}

func TestRollSevenAndMoveRobber(t *testing.T) {
	rng := &scriptRand{ints: []int{2, 3}} // 3 + 4
	g := playing(t, rng, "a", "b")
	c := g.Board.IntersectionsOfTile(0)[0]
	require.NoError(t, g.Board.PlaceSettlement("b", c.ID, false))
	g.Player("b").Credit(resource.Bundle{resource.Ore: 1})

	mustApply(t, g, "a", Action{Type: ActRollDice})
	assert.Equal(t, PhaseRobberPlacement, g.Phase())
	assert.Zero(t, g.Player("a").TotalResources())

	rejected(t, g, "a", Action{Type: ActEndTurn}, CodeIllegalPhase)
	rejected(t, g, "a", NewAction(ActMoveRobber, map[string]int{"tileId": g.Board.Robber}), CodeInvalidTarget)
	rejected(t, g, "a", NewAction(ActMoveRobber, map[string]int{"tileId": 42}), CodeInvalidTarget)
	rejected(t, g, "a", Action{Type: ActMoveRobber}, CodeInvalidTarget)

	events := mustApply(t, g, "a", NewAction(ActMoveRobber, map[string]int{"tileId": 0}))
	assert.Equal(t, 0, g.Board.Robber)
	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Equal(t, 1, g.Player("a").Resources[resource.Ore])
	assert.Zero(t, g.Player("b").Resources[resource.Ore])

	var stolen *Event
	for i := range events {
		if events[i].Kind == EvResourceStolen {
			stolen = &events[i]
		}
	}
	require.NotNil(t, stolen)
	assert.ElementsMatch(t, []string{"a", "b"}, stolen.Recipients)
}

func TestMoveRobberWithoutVictims(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	g.State.Stage = RobberPlacement{}
	c := g.Board.IntersectionsOfTile(0)[0]
	require.NoError(t, g.Board.PlaceSettlement("a", c.ID, false))

	events := mustApply(t, g, "a", NewAction(ActMoveRobber, map[string]int{"tileId": 0}))
	assert.False(t, hasEvent(events, EvResourceStolen), "own buildings are never robbed")
}

func TestBuildDuringPlay(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	center := centerTile(t, g.Board)
	corners := g.Board.IntersectionsOfTile(center)
	ring := ringEdges(g.Board, center)
	require.NoError(t, g.Board.PlaceSettlement("a", corners[0].ID, false))

	rejected(t, g, "a", road(ring[0]), CodeInsufficientResources)
	rejected(t, g, "a", road(ring[2]), CodeInvalidTarget)

	a.Credit(resource.Bundle{resource.Wood: 4, resource.Brick: 4, resource.Wheat: 3, resource.Sheep: 1, resource.Ore: 3})
	mustApply(t, g, "a", road(ring[0]))
	mustApply(t, g, "a", road(ring[1]))
	assert.Equal(t, 2, a.Roads)

	rejected(t, g, "a", settle(corners[1].ID), CodeInvalidTarget)
	mustApply(t, g, "a", settle(corners[2].ID))
	assert.Equal(t, 1, a.Settlements)
	assert.Equal(t, 1, a.VictoryPoints)

	mustApply(t, g, "a", NewAction(ActBuildCity, map[string]string{"intersectionId": corners[2].ID}))
	assert.Equal(t, 0, a.Settlements)
	assert.Equal(t, 1, a.Cities)
	assert.Equal(t, 2, a.VictoryPoints)
	assert.Equal(t, resource.Bundle{resource.Wood: 1, resource.Brick: 1}, ledger(a))

	rejected(t, g, "a", NewAction(ActBuildCity, map[string]string{"intersectionId": corners[2].ID}), CodeInvalidTarget)
}

func TestPieceCaps(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	a.Credit(resource.Bundle{resource.Wood: 9, resource.Brick: 9, resource.Wheat: 9, resource.Sheep: 9, resource.Ore: 9})

	a.Roads = MaxRoads
	rejected(t, g, "a", road(g.Board.Edges()[0].ID), CodeInsufficientResources)
	a.Settlements = MaxSettlements
	rejected(t, g, "a", settle(g.Board.Intersections()[0].ID), CodeInsufficientResources)
	a.Cities = MaxCities
	rejected(t, g, "a", NewAction(ActBuildCity, map[string]string{"intersectionId": "x"}), CodeInsufficientResources)
}

func TestLongestRoadAward(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	center := centerTile(t, g.Board)
	corners := g.Board.IntersectionsOfTile(center)
	ring := ringEdges(g.Board, center)
	require.NoError(t, g.Board.PlaceSettlement("a", corners[0].ID, false))
	a.Credit(resource.Bundle{resource.Wood: 5, resource.Brick: 5})

	for i := 0; i < 4; i++ {
		mustApply(t, g, "a", road(ring[i]))
	}
	assert.Empty(t, g.State.LongestRoad.Holder, "four roads do not beat the threshold")

	events := mustApply(t, g, "a", road(ring[4]))
	assert.True(t, hasEvent(events, EvBonusAwarded))
	assert.Equal(t, Bonus{Holder: "a", Size: 5}, g.State.LongestRoad)
	assert.Equal(t, BonusPoints, a.VictoryPoints)
}

func TestSettlementCutsLongestRoad(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	center := centerTile(t, g.Board)
	corners := g.Board.IntersectionsOfTile(center)
	ring := ringEdges(g.Board, center)
	for _, id := range ring[:5] {
		e, _ := g.Board.Edge(id)
		e.Owner = "a"
	}
	g.State.LongestRoad = Bonus{Holder: "a", Size: 5}
	g.Player("a").VictoryPoints = 2

	// b cuts the road at corner 2 from a spur of its own
	c2, _ := g.Board.Intersection(corners[2].ID)
	for _, nb := range c2.Adj {
		if nb != corners[1].ID && nb != corners[3].ID {
			e, _ := g.Board.Edge(board.EdgeKey(c2.ID, nb))
			e.Owner = "b"
		}
	}
	g.setTurn(1)
	g.Player("b").Credit(resource.SettlementCost)
	mustApply(t, g, "b", settle(corners[2].ID))

	assert.Equal(t, Bonus{Holder: "a", Size: RoadThreshold}, g.State.LongestRoad)
	assert.Equal(t, 2, g.Player("a").VictoryPoints, "holder keeps the title")
}

func TestBankTrade(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	a.Credit(resource.Bundle{resource.Wood: 4, resource.Brick: 3})

	bank := func(give, get resource.Bundle) Action {
		return NewAction(ActOfferTrade, OfferPayload{Give: give, Get: get, To: Bank})
	}
	rejected(t, g, "a", bank(resource.Bundle{resource.Brick: 3}, resource.Bundle{resource.Ore: 1}), CodeInvalidTarget)
	rejected(t, g, "a", bank(resource.Bundle{resource.Wood: 4}, resource.Bundle{resource.Wood: 1}), CodeInvalidTarget)
	rejected(t, g, "a", bank(resource.Bundle{resource.Brick: 4}, resource.Bundle{resource.Ore: 1}), CodeInsufficientResources)
	rejected(t, g, "a", bank(resource.Bundle{"gold": 4}, resource.Bundle{resource.Ore: 1}), CodeInvalidTarget)
	rejected(t, g, "a", bank(resource.Bundle{resource.Wood: 4}, resource.Bundle{resource.Ore: 1<<62 + 1}), CodeInvalidTarget)
	rejected(t, g, "a", bank(resource.Bundle{resource.Wood: 4}, resource.Bundle{resource.Ore: 2}), CodeInvalidTarget)
	rejected(t, g, "a", bank(resource.Bundle{resource.Wood: 8}, resource.Bundle{resource.Ore: 2}), CodeInvalidTarget)

	events := mustApply(t, g, "a", bank(resource.Bundle{resource.Wood: 4}, resource.Bundle{resource.Ore: 1}))
	assert.True(t, hasEvent(events, EvBankTrade))
	assert.Equal(t, resource.Bundle{resource.Brick: 3, resource.Ore: 1}, ledger(a))
	assert.Nil(t, g.State.TradeOffer)
}

func TestDirectedTradeLifecycle(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b", "c")
	a, b := g.Player("a"), g.Player("b")
	a.Credit(resource.Bundle{resource.Wood: 2})
	b.Credit(resource.Bundle{resource.Ore: 1})

	rejected(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 3}, Get: resource.Bundle{resource.Ore: 1}, To: "b",
	}), CodeInsufficientResources)
	rejected(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Ore: 1}, To: "a",
	}), CodeInvalidTarget)
	rejected(t, g, "b", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Ore: 1}, Get: resource.Bundle{resource.Wood: 1},
	}), CodeNotYourTurn)

	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 2}, Get: resource.Bundle{resource.Ore: 1}, To: "b",
	}))
	offer := g.State.TradeOffer
	require.NotNil(t, offer)

	accept := func(id int64) Action { return NewAction(ActAcceptTrade, map[string]int64{"tradeId": id}) }
	rejected(t, g, "b", accept(offer.ID+1), CodeStaleState)
	rejected(t, g, "c", accept(offer.ID), CodeInvalidTarget)
	rejected(t, g, "a", accept(offer.ID), CodeInvalidTarget)

	events := mustApply(t, g, "b", accept(offer.ID))
	assert.True(t, hasEvent(events, EvTradeCompleted))
	assert.Equal(t, resource.Bundle{resource.Ore: 1}, ledger(a))
	assert.Equal(t, resource.Bundle{resource.Wood: 2}, ledger(b))
	assert.Nil(t, g.State.TradeOffer)

	rejected(t, g, "b", accept(offer.ID), CodeStaleState)
}

func TestAcceptRequiresAcceptorFunds(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	g.Player("a").Credit(resource.Bundle{resource.Wood: 1})
	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Ore: 1},
	}))
	rejected(t, g, "b", NewAction(ActAcceptTrade, map[string]int64{"tradeId": g.State.TradeOffer.ID}), CodeInsufficientResources)
}

func TestAcceptClosesUnfundedOffer(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a, b := g.Player("a"), g.Player("b")
	a.Credit(resource.Bundle{resource.Wood: 4})
	b.Credit(resource.Bundle{resource.Ore: 1})

	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Ore: 1},
	}))
	id := g.State.TradeOffer.ID

	// the bank trade leaves the offer pending but spends a's wood
	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 4}, Get: resource.Bundle{resource.Brick: 1}, To: Bank,
	}))
	require.NotNil(t, g.State.TradeOffer)

	events, err := g.Apply("b", NewAction(ActAcceptTrade, map[string]int64{"tradeId": id}))
	require.NoError(t, err)
	assert.True(t, hasEvent(events, EvTradeClosed))
	assert.Nil(t, g.State.TradeOffer)
	assert.Equal(t, 1, b.Resources[resource.Ore], "nothing changes hands")
}

func TestRejectTrade(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b", "c")
	g.Player("a").Credit(resource.Bundle{resource.Wood: 5})
	offer := func(to string) *TradeOffer {
		mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
			Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Sheep: 1}, To: to,
		}))
		return g.State.TradeOffer
	}
	reject := func(id int64) Action { return NewAction(ActRejectTrade, map[string]int64{"tradeId": id}) }

	// directed: only the addressee (or the initiator) may reject
	o := offer("b")
	rejected(t, g, "c", reject(o.ID), CodeInvalidTarget)
	mustApply(t, g, "b", reject(o.ID))
	assert.Nil(t, g.State.TradeOffer)

	// initiator cancels
	o = offer("")
	mustApply(t, g, "a", reject(o.ID))
	assert.Nil(t, g.State.TradeOffer)

	// open: clears after every other player declined
	o = offer("")
	mustApply(t, g, "b", reject(o.ID))
	require.NotNil(t, g.State.TradeOffer)
	assert.Equal(t, []string{"b"}, g.State.TradeOffer.DeclinedBy)
	rejected(t, g, "b", reject(o.ID), CodeInvalidTarget)
	mustApply(t, g, "c", reject(o.ID))
	assert.Nil(t, g.State.TradeOffer)

	rejected(t, g, "c", reject(o.ID), CodeStaleState)
}

func TestNewOfferReplacesPending(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	g.Player("a").Credit(resource.Bundle{resource.Wood: 2})
	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Sheep: 1},
	}))
	first := g.State.TradeOffer.ID
	mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
		Give: resource.Bundle{resource.Wood: 2}, Get: resource.Bundle{resource.Ore: 1},
	}))
	assert.NotEqual(t, first, g.State.TradeOffer.ID)
	rejected(t, g, "b", NewAction(ActAcceptTrade, map[string]int64{"tradeId": first}), CodeStaleState)
}

func TestOpenOfferMarkers(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b", "c")
	g.Player("a").Credit(resource.Bundle{resource.Wood: 1})
	g.Player("c").Credit(resource.Bundle{resource.Ore: 1})

	for _, to := range []string{OpenOffer, "PLAYER", ""} {
		mustApply(t, g, "a", NewAction(ActOfferTrade, OfferPayload{
			Give: resource.Bundle{resource.Wood: 1}, Get: resource.Bundle{resource.Ore: 1}, To: to,
		}))
		require.NotNil(t, g.State.TradeOffer)
		assert.Empty(t, g.State.TradeOffer.To, "%q opens the offer to everyone", to)
	}

	id := g.State.TradeOffer.ID
	mustApply(t, g, "c", NewAction(ActAcceptTrade, map[string]int64{"tradeId": id}))
	assert.Equal(t, resource.Bundle{resource.Ore: 1}, ledger(g.Player("a")))
	assert.Equal(t, resource.Bundle{resource.Wood: 1}, ledger(g.Player("c")))
}

func TestBuyDevCard(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	rejected(t, g, "a", Action{Type: ActBuyDevCard}, CodeInsufficientResources)

	a.Credit(resource.DevCardCost)
	events := mustApply(t, g, "a", Action{Type: ActBuyDevCard})
	require.Len(t, a.DevCards, 1)
	assert.Equal(t, player.Monopoly, a.DevCards[0].Kind, "unshuffled deck pops from the tail")
	assert.True(t, a.DevCards[0].New)
	assert.Len(t, g.Deck, 24)
	assert.Zero(t, a.TotalResources())

	var private, public int
	for _, e := range events {
		if e.Kind != EvDevCardBought {
			continue
		}
		if e.Public() {
			public++
			assert.Empty(t, e.Payload.(DevCardBought).Kind, "card kind stays hidden")
		} else {
			private++
			assert.Equal(t, []string{"a"}, e.Recipients)
		}
	}
	assert.Equal(t, 1, public)
	assert.Equal(t, 1, private)

	rejected(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}), CodeInvalidTarget)

	g.Deck = nil
	a.Credit(resource.DevCardCost)
	rejected(t, g, "a", Action{Type: ActBuyDevCard}, CodeInsufficientResources)
}

func TestPlayCardTiming(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	a.AddCard(player.VictoryPoint)
	a.DevCards = append(a.DevCards, player.DevCard{Kind: player.Knight, New: true})

	rejected(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 1}), CodeInvalidTarget)
	rejected(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 7}), CodeInvalidTarget)
	rejected(t, g, "a", Action{Type: ActPlayDevCard}, CodeInvalidTarget)

	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	assert.Equal(t, 1, a.VictoryPoints, "VP cards are playable on the turn they are bought")
	require.Len(t, a.PlayedDevCards, 1)
	assert.True(t, a.PlayedDevCards[0].Used)

	mustApply(t, g, "a", Action{Type: ActEndTurn})
	mustApply(t, g, "b", Action{Type: ActEndTurn})
	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	assert.Equal(t, PhaseRobberPlacement, g.Phase())
	assert.Equal(t, 1, a.KnightsPlayed)
}

func TestLargestArmyTakeover(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a, b := g.Player("a"), g.Player("b")
	knights := func(p *player.Player, n int) {
		for i := 0; i < n; i++ {
			p.DevCards = append(p.DevCards, player.DevCard{Kind: player.Knight})
		}
	}
	playKnight := func(id string) []Event {
		return mustApply(t, g, id, NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	}

	knights(a, 3)
	playKnight("a")
	playKnight("a")
	assert.Empty(t, g.State.LargestArmy.Holder, "two knights do not beat the threshold")
	events := playKnight("a")
	assert.True(t, hasEvent(events, EvBonusAwarded))
	assert.Equal(t, Bonus{Holder: "a", Size: 3}, g.State.LargestArmy)
	assert.Equal(t, 2, a.VictoryPoints)

	g.State.Stage = Playing{}
	g.setTurn(1)
	knights(b, 4)
	for i := 0; i < 3; i++ {
		playKnight("b")
	}
	assert.Equal(t, "a", g.State.LargestArmy.Holder, "a tie keeps the holder")
	playKnight("b")
	assert.Equal(t, Bonus{Holder: "b", Size: 4}, g.State.LargestArmy)
	assert.Equal(t, 0, a.VictoryPoints)
	assert.Equal(t, 2, b.VictoryPoints)
}

func TestRoadBuildingGrantsFreeRoads(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	center := centerTile(t, g.Board)
	corners := g.Board.IntersectionsOfTile(center)
	ring := ringEdges(g.Board, center)
	require.NoError(t, g.Board.PlaceSettlement("a", corners[0].ID, false))
	a.DevCards = []player.DevCard{{Kind: player.RoadBuilding}}

	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	assert.Equal(t, FreeRoadsPerCard, g.State.FreeRoads)
	assert.Zero(t, a.TotalResources(), "no raw resources are credited")

	mustApply(t, g, "a", road(ring[0]))
	mustApply(t, g, "a", road(ring[1]))
	assert.Equal(t, 2, a.Roads)
	assert.Zero(t, g.State.FreeRoads)
	rejected(t, g, "a", road(ring[2]), CodeInsufficientResources)
}

func TestYearOfPlentyAndMonopoly(t *testing.T) {
	g := playing(t, &scriptRand{ints: []int{4, 4}}, "a", "b", "c")
	a := g.Player("a")
	a.DevCards = []player.DevCard{{Kind: player.YearOfPlenty}, {Kind: player.YearOfPlenty}, {Kind: player.Monopoly}}

	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{
		"cardIndex": 0, "target": map[string]any{"resources": []string{"wood", "brick"}},
	}))
	assert.Equal(t, resource.Bundle{resource.Wood: 1, resource.Brick: 1}, ledger(a))

	// no choice: two random kinds (both ore here)
	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	assert.Equal(t, 2, a.Resources[resource.Ore])

	g.Player("b").Credit(resource.Bundle{resource.Wood: 3, resource.Sheep: 1})
	g.Player("c").Credit(resource.Bundle{resource.Wood: 2})
	mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{
		"cardIndex": 0, "target": map[string]any{"resource": "wood"},
	}))
	assert.Equal(t, 6, a.Resources[resource.Wood])
	assert.Zero(t, g.Player("b").Resources[resource.Wood])
	assert.Zero(t, g.Player("c").Resources[resource.Wood])
	assert.Equal(t, 1, g.Player("b").Resources[resource.Sheep])
}

func TestVictoryEndsGame(t *testing.T) {
	g := playing(t, &scriptRand{}, "a", "b")
	a := g.Player("a")
	a.VictoryPoints = WinPoints - 1
	a.DevCards = []player.DevCard{{Kind: player.VictoryPoint}}

	events := mustApply(t, g, "a", NewAction(ActPlayDevCard, map[string]any{"cardIndex": 0}))
	assert.True(t, hasEvent(events, EvGameOver))
	assert.True(t, g.Finished())
	assert.Equal(t, GameOver{Winner: "a"}, g.State.Stage)
	assert.Equal(t, "a", g.State.Winner)

	rejected(t, g, "a", Action{Type: ActRollDice}, CodeIllegalPhase)
	rejected(t, g, "a", Action{Type: ActEndTurn}, CodeIllegalPhase)
	rejected(t, g, "a", Action{Type: ActStartGame}, CodeIllegalPhase)
	mustApply(t, g, "b", NewAction(ActSendMessage, map[string]string{"message": "gg"}))
}
