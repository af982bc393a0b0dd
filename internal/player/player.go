// internal/player/player.go
//
// Per-participant state for a single room.
// Responsibilities:
//   - 5-way resource ledger that never goes negative.
//   - Victory points and piece counters.
//   - Development card hand and played pile.
//
// Notes:
//   - Pay is all-or-nothing: either every kind is debited or nothing is.
//   - AddResources rejects kinds outside the ledger with ErrUnknownResource.

package player

import (
	"errors"
	"fmt"

	"github.com/robalobadob/hexsettlers/internal/resource"
)

// ErrUnknownResource is returned when crediting a kind that is not in the ledger.
var ErrUnknownResource = errors.New("unknown resource kind")

// CardKind identifies a development card.
type CardKind string

const (
	Knight       CardKind = "KNIGHT"
	VictoryPoint CardKind = "VP"
	RoadBuilding CardKind = "ROAD_BUILDING"
	YearOfPlenty CardKind = "YEAR_OF_PLENTY"
	Monopoly     CardKind = "MONOPOLY"

	// Hidden replaces the kind of a card in someone else's hand.
	Hidden CardKind = "HIDDEN"
)

// DevCard is a card held in (or played from) a hand.
type DevCard struct {
	Kind CardKind `json:"type"`
	Used bool     `json:"used"`
	New  bool     `json:"isNew"` // acquired this turn
}

// Player holds the ledger and counters of one participant.
type Player struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	ColorIndex     int                   `json:"colorIndex"`
	Resources      map[resource.Kind]int `json:"resources"`
	VictoryPoints  int                   `json:"victoryPoints"`
	Roads          int                   `json:"roads"`
	Settlements    int                   `json:"settlements"`
	Cities         int                   `json:"cities"`
	DevCards       []DevCard             `json:"devCards"`
	PlayedDevCards []DevCard             `json:"playedDevCards"`
	KnightsPlayed  int                   `json:"knightsPlayed"`
}

// New returns a player with an empty ledger.
func New(id, name string, colorIndex int) *Player {
	p := &Player{
		ID:             id,
		Name:           name,
		ColorIndex:     colorIndex,
		DevCards:       []DevCard{},
		PlayedDevCards: []DevCard{},
	}
	p.ResetResources()
	return p
}

// ResetResources zeroes every ledger kind.
func (p *Player) ResetResources() {
	p.Resources = make(map[resource.Kind]int, len(resource.Tradable))
	for _, k := range resource.Tradable {
		p.Resources[k] = 0
	}
}

// CanAfford reports whether every kind in cost is covered by the ledger.
func (p *Player) CanAfford(cost resource.Bundle) bool {
	for k, n := range cost {
		if p.Resources[k] < n {
			return false
		}
	}
	return true
}

// Pay debits cost atomically. It returns false and changes nothing when the
// player cannot afford it.
func (p *Player) Pay(cost resource.Bundle) bool {
	if !p.CanAfford(cost) {
		return false
	}
	for k, n := range cost {
		p.Resources[k] -= n
	}
	return true
}

// AddResources credits amount of kind.
func (p *Player) AddResources(kind resource.Kind, amount int) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownResource, kind)
	}
	p.Resources[kind] += amount
	return nil
}

// Credit adds every kind of b. Callers pass validated bundles.
func (p *Player) Credit(b resource.Bundle) {
	for k, n := range b {
		_ = p.AddResources(k, n)
	}
}

// Take removes up to n of kind and returns how many were removed.
func (p *Player) Take(kind resource.Kind, n int) int {
	have := p.Resources[kind]
	if n > have {
		n = have
	}
	p.Resources[kind] = have - n
	return n
}

// HeldKinds lists the kinds with a positive count, in resource.Tradable order.
func (p *Player) HeldKinds() []resource.Kind {
	var out []resource.Kind
	for _, k := range resource.Tradable {
		if p.Resources[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

// TotalResources sums the ledger.
func (p *Player) TotalResources() int {
	n := 0
	for _, v := range p.Resources {
		n += v
	}
	return n
}

// AddCard puts a freshly bought card in the hand.
func (p *Player) AddCard(kind CardKind) {
	p.DevCards = append(p.DevCards, DevCard{Kind: kind, New: true})
}

// Playable reports whether the card at index can be played this turn.
// Victory point cards are playable on the turn they are bought.
func (p *Player) Playable(index int) bool {
	if index < 0 || index >= len(p.DevCards) {
		return false
	}
	c := p.DevCards[index]
	if c.Used {
		return false
	}
	return !c.New || c.Kind == VictoryPoint
}

// PlayCard marks the card used and moves it to the played pile.
func (p *Player) PlayCard(index int) DevCard {
	c := p.DevCards[index]
	c.Used = true
	p.PlayedDevCards = append(p.PlayedDevCards, c)
	p.DevCards = append(p.DevCards[:index], p.DevCards[index+1:]...)
	return c
}

// EndTurn makes every card bought this turn playable.
func (p *Player) EndTurn() {
	for i := range p.DevCards {
		p.DevCards[i].New = false
	}
}

// Clone returns a deep copy safe to hand out after the room lock is released.
func (p *Player) Clone() Player {
	c := *p
	c.Resources = make(map[resource.Kind]int, len(p.Resources))
	for k, v := range p.Resources {
		c.Resources[k] = v
	}
	c.DevCards = append([]DevCard{}, p.DevCards...)
	c.PlayedDevCards = append([]DevCard{}, p.PlayedDevCards...)
	return c
}
