// internal/game/trade.go
//
// Bank and player-to-player trades.
// Responsibilities:
//   - Bank: exactly 4 of one kind for 1 of another, settled immediately.
//   - Offers: at most one pending offer per room, directed at one player or
//     open to all ("", ALL or PLAYER). A new offer replaces the old one.
//   - Accept/reject must name the pending offer's id; anything else is stale.
//
// Notes:
//   - Affordability of both sides is re-checked at accept time. If the
//     initiator can no longer pay, the offer is closed instead.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

const statusPending = "PENDING"

// openOfferLegacy is the open-offer marker older clients send.
const openOfferLegacy = "PLAYER"

func (g *Game) offerTrade(p *player.Player, o OfferPayload) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	if !o.Give.Valid() || !o.Get.Valid() {
		return nil, ErrBadPayload
	}

	if o.To == Bank {
		gk, gn, ok1 := o.Give.Single()
		wk, wn, ok2 := o.Get.Single()
		if !ok1 || !ok2 || gk == wk || gn != BankRatio || wn != 1 {
			return nil, ErrBadBankRatio
		}
		if !p.CanAfford(o.Give) {
			return nil, ErrInsufficientResources
		}
		p.Pay(o.Give)
		p.Credit(o.Get)
		return []Event{broadcast(EvBankTrade, BankTrade{PlayerID: p.ID, Give: o.Give, Get: o.Get})}, nil
	}

	if o.To == OpenOffer || o.To == openOfferLegacy {
		o.To = ""
	}
	if o.To == p.ID {
		return nil, ErrOwnOffer
	}
	if o.To != "" && g.Player(o.To) == nil {
		return nil, ErrInvalidTarget
	}
	if !p.CanAfford(o.Give) {
		return nil, ErrInsufficientResources
	}

	g.nextTradeID++
	offer := &TradeOffer{
		ID:     g.nextTradeID,
		From:   p.ID,
		To:     o.To,
		Give:   copyBundle(o.Give),
		Get:    copyBundle(o.Get),
		Status: statusPending,
	}
	g.State.TradeOffer = offer
	return []Event{broadcast(EvTradeOffered, *offer)}, nil
}

// pending returns the offer with id, or ErrNoOffer.
func (g *Game) pending(id int64) (*TradeOffer, error) {
	o := g.State.TradeOffer
	if o == nil || o.ID != id {
		return nil, ErrNoOffer
	}
	return o, nil
}

func (g *Game) acceptTrade(p *player.Player, id int64) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	o, err := g.pending(id)
	if err != nil {
		return nil, err
	}
	if o.From == p.ID {
		return nil, ErrOwnOffer
	}
	if o.To != "" && o.To != p.ID {
		return nil, ErrNotAddressee
	}
	if !p.CanAfford(o.Get) {
		return nil, ErrInsufficientResources
	}

	from := g.Player(o.From)
	g.State.TradeOffer = nil
	if from == nil || !from.CanAfford(o.Give) {
		return []Event{broadcast(EvTradeClosed, TradeClosed{TradeID: o.ID, Reason: ClosedUnfunded})}, nil
	}

	from.Pay(o.Give)
	p.Pay(o.Get)
	p.Credit(o.Give)
	from.Credit(o.Get)
	return []Event{broadcast(EvTradeCompleted, TradeCompleted{
		TradeID: o.ID, From: o.From, AcceptedBy: p.ID, Give: o.Give, Get: o.Get,
	})}, nil
}

func (g *Game) rejectTrade(p *player.Player, id int64) ([]Event, error) {
	if !g.inPlay() {
		return nil, ErrIllegalPhase
	}
	o, err := g.pending(id)
	if err != nil {
		return nil, err
	}

	switch {
	case o.From == p.ID:
		g.State.TradeOffer = nil
		return []Event{broadcast(EvTradeClosed, TradeClosed{TradeID: o.ID, Reason: ClosedCancelled, By: p.ID})}, nil
	case o.To != "":
		if o.To != p.ID {
			return nil, ErrNotAddressee
		}
		g.State.TradeOffer = nil
		return []Event{broadcast(EvTradeClosed, TradeClosed{TradeID: o.ID, Reason: ClosedDeclined, By: p.ID})}, nil
	}

	for _, id := range o.DeclinedBy {
		if id == p.ID {
			return nil, ErrAlreadyDeclined
		}
	}
	o.DeclinedBy = append(o.DeclinedBy, p.ID)
	if len(o.DeclinedBy) >= len(g.Players)-1 {
		g.State.TradeOffer = nil
		return []Event{broadcast(EvTradeClosed, TradeClosed{TradeID: o.ID, Reason: ClosedDeclined, By: p.ID})}, nil
	}
	return []Event{broadcast(EvTradeDeclined, TradeClosed{TradeID: o.ID, Reason: ClosedDeclined, By: p.ID})}, nil
}

func copyBundle(b resource.Bundle) resource.Bundle {
	out := make(resource.Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
