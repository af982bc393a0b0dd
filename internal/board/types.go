// internal/board/types.go
//
// Core type definitions for the hex board.
// Defines:
//   - Tile: one of the 19 hexes (axial coordinates, resource, number token).
//   - Intersection: a hex corner shared by up to three tiles.
//   - Edge: a hex side between two intersections ("road" slot).
//   - Board: dense arena of the above plus key→index lookups.
//
// Intersections and edges live in slices and refer to each other by index;
// their string IDs are canonical keys derived from rounded pixel geometry.

package board

import (
	"errors"

	"github.com/robalobadob/hexsettlers/internal/resource"
)

// Building marks what stands on an intersection.
type Building string

const (
	NoBuilding Building = ""
	Settlement Building = "SETTLEMENT"
	City       Building = "CITY"
)

var (
	ErrUnknownTile         = errors.New("unknown tile")
	ErrUnknownIntersection = errors.New("unknown intersection")
	ErrUnknownEdge         = errors.New("unknown edge")
	ErrOccupied            = errors.New("already occupied")
	ErrTooClose            = errors.New("adjacent intersection is occupied")
	ErrNotConnected        = errors.New("not connected to own network")
	ErrNotOwnSettlement    = errors.New("not an own settlement")
	ErrRobberUnmoved       = errors.New("robber already on tile")
)

// Tile is a single hex. Number is 0 for the desert.
type Tile struct {
	ID       int           `json:"id"`
	Q        int           `json:"q"`
	R        int           `json:"r"`
	S        int           `json:"s"`
	Resource resource.Kind `json:"resource"`
	Number   int           `json:"number,omitempty"`

	corners [6]int
}

// HasToken reports whether the tile produces on a roll.
func (t *Tile) HasToken() bool { return t.Resource != resource.Desert && t.Number != 0 }

// Intersection is a settlement slot.
type Intersection struct {
	ID       string   `json:"id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Owner    string   `json:"owner,omitempty"`
	Building Building `json:"type,omitempty"`
	Adj      []string `json:"adj"`

	adj   []int // neighbouring intersections
	edges []int // incident edges
}

// Edge is a road slot between two intersections.
type Edge struct {
	ID    string  `json:"id"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Owner string  `json:"owner,omitempty"`

	a, b int
}

// Board is the generated topology plus ownership and the robber.
type Board struct {
	Tiles  []Tile
	Robber int // tile id

	nodes     []Intersection
	nodeIndex map[string]int
	edges     []Edge
	edgeIndex map[string]int
}
