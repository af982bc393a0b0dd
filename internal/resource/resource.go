// internal/resource/resource.go
//
// Resource kinds and bundles shared by the board, the player ledger and the
// game rules.
//
// Notes:
//   - Kinds are lowercase on the wire ("wood", "brick", ...).
//   - Desert is a tile kind only; it is never held in a ledger.

package resource

// Kind names a resource a tile can produce (or Desert).
type Kind string

const (
	Wood   Kind = "wood"
	Brick  Kind = "brick"
	Sheep  Kind = "sheep"
	Wheat  Kind = "wheat"
	Ore    Kind = "ore"
	Desert Kind = "desert"
)

// Tradable lists the five ledger kinds in a fixed order.
// Random choices over kinds index into this slice, so the order matters for
// seeded tests.
var Tradable = []Kind{Wood, Brick, Sheep, Wheat, Ore}

// Valid reports whether k is one of the five ledger kinds.
func (k Kind) Valid() bool {
	switch k {
	case Wood, Brick, Sheep, Wheat, Ore:
		return true
	}
	return false
}

// Bundle is an amount per kind, used for costs and trade sides.
type Bundle map[Kind]int

// MaxAmount bounds a single amount in an inbound bundle.
const MaxAmount = 99

// Valid reports whether every key is a ledger kind and every amount is in
// 1..MaxAmount. An empty bundle is not valid.
func (b Bundle) Valid() bool {
	if len(b) == 0 {
		return false
	}
	for k, n := range b {
		if !k.Valid() || n <= 0 || n > MaxAmount {
			return false
		}
	}
	return true
}

// Total sums all amounts.
func (b Bundle) Total() int {
	n := 0
	for _, v := range b {
		n += v
	}
	return n
}

// Single returns the only kind and amount of a one-kind bundle.
func (b Bundle) Single() (Kind, int, bool) {
	if len(b) != 1 {
		return "", 0, false
	}
	for k, n := range b {
		return k, n, true
	}
	return "", 0, false
}

// Building costs.
var (
	RoadCost       = Bundle{Wood: 1, Brick: 1}
	SettlementCost = Bundle{Wood: 1, Brick: 1, Wheat: 1, Sheep: 1}
	CityCost       = Bundle{Wheat: 2, Ore: 3}
	DevCardCost    = Bundle{Wheat: 1, Sheep: 1, Ore: 1}
)
