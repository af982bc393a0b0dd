// internal/board/generate.go
//
// Board generation and graph construction.
// Responsibilities:
//   - Lay out the 19 axial tiles and shuffle their resources.
//   - Assign number tokens in generation order, skipping the desert.
//   - Project every tile to pixel space, derive its six corners and merge
//     coincident corners into one intersection via a canonical key.
//
// Notes:
//   - Corners of neighbouring tiles are computed independently from each
//     tile's centre; rounding to whole pixels makes them collapse to the
//     same key. HexSize must stay large enough for that to hold.

package board

import (
	"fmt"
	"math"
	"sort"

	"github.com/robalobadob/hexsettlers/internal/resource"
)

// HexSize is the pixel radius of a tile.
const HexSize = 60

// Shuffler is the slice of *rand.Rand the generator needs.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

var tileResources = []resource.Kind{
	resource.Wood, resource.Wood, resource.Wood, resource.Wood,
	resource.Sheep, resource.Sheep, resource.Sheep, resource.Sheep,
	resource.Wheat, resource.Wheat, resource.Wheat, resource.Wheat,
	resource.Brick, resource.Brick, resource.Brick,
	resource.Ore, resource.Ore, resource.Ore,
	resource.Desert,
}

// NumberTokens is the fixed token sequence handed out in generation order.
var NumberTokens = []int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}

// Generate builds a fresh board with shuffled resources.
func Generate(rng Shuffler) *Board {
	kinds := append([]resource.Kind(nil), tileResources...)
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	return FromResources(kinds)
}

// FromResources builds a board from an explicit resource layout (one kind per
// tile in generation order). It panics unless kinds has one entry per tile.
func FromResources(kinds []resource.Kind) *Board {
	layout := axialLayout()
	if len(kinds) != len(layout) {
		panic(fmt.Sprintf("board: %d resources for %d tiles", len(kinds), len(layout)))
	}
	b := &Board{Tiles: make([]Tile, 0, len(layout)), Robber: -1}
	next := 0
	for i, h := range layout {
		t := Tile{ID: i, Q: h[0], R: h[1], S: -h[0] - h[1], Resource: kinds[i]}
		if t.Resource == resource.Desert {
			b.Robber = i
		} else if next < len(NumberTokens) {
			t.Number = NumberTokens[next]
			next++
		}
		b.Tiles = append(b.Tiles, t)
	}
	b.buildGraph()
	return b
}

// axialLayout lists (q, r) for |q|,|r| <= 2 and |q+r| <= 2 in q-major order.
func axialLayout() [][2]int {
	var out [][2]int
	for q := -2; q <= 2; q++ {
		for r := -2; r <= 2; r++ {
			if abs(q+r) <= 2 {
				out = append(out, [2]int{q, r})
			}
		}
	}
	return out
}

// hexToPixel projects axial coordinates to the pixel centre of a pointy-top hex.
func hexToPixel(q, r int) (float64, float64) {
	x := HexSize * (math.Sqrt(3)*float64(q) + math.Sqrt(3)/2*float64(r))
	y := HexSize * (3.0 / 2 * float64(r))
	return x, y
}

// hexCorners returns the six corners at 30°+60°·k around (cx, cy).
func hexCorners(cx, cy float64) [6][2]float64 {
	var out [6][2]float64
	for i := 0; i < 6; i++ {
		rad := math.Pi / 180 * float64(60*i+30)
		out[i] = [2]float64{cx + HexSize*math.Cos(rad), cy + HexSize*math.Sin(rad)}
	}
	return out
}

// Key is the canonical intersection key for a pixel position.
func Key(x, y float64) string {
	return fmt.Sprintf("%d,%d", int(math.Round(x)), int(math.Round(y)))
}

// EdgeKey is the canonical edge key for two intersection keys.
func EdgeKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + ";" + pair[1]
}

// CornerKeys returns the canonical keys of the six corners of hex (q, r).
func CornerKeys(q, r int) [6]string {
	cx, cy := hexToPixel(q, r)
	var out [6]string
	for i, c := range hexCorners(cx, cy) {
		out[i] = Key(c[0], c[1])
	}
	return out
}

func (b *Board) buildGraph() {
	b.nodeIndex = make(map[string]int)
	b.edgeIndex = make(map[string]int)
	for ti := range b.Tiles {
		t := &b.Tiles[ti]
		cx, cy := hexToPixel(t.Q, t.R)
		corners := hexCorners(cx, cy)
		for i, c := range corners {
			t.corners[i] = b.node(c[0], c[1])
		}
		for i := range corners {
			b.link(t.corners[i], t.corners[(i+1)%6])
		}
	}
}

// node returns the index of the intersection at (x, y), creating it on first use.
func (b *Board) node(x, y float64) int {
	k := Key(x, y)
	if i, ok := b.nodeIndex[k]; ok {
		return i
	}
	b.nodes = append(b.nodes, Intersection{ID: k, X: x, Y: y, Adj: []string{}})
	b.nodeIndex[k] = len(b.nodes) - 1
	return len(b.nodes) - 1
}

// link records the undirected adjacency and the edge between two intersections.
func (b *Board) link(i, j int) {
	a, c := &b.nodes[i], &b.nodes[j]
	k := EdgeKey(a.ID, c.ID)
	if _, ok := b.edgeIndex[k]; ok {
		return
	}
	b.edges = append(b.edges, Edge{ID: k, X1: a.X, Y1: a.Y, X2: c.X, Y2: c.Y, a: i, b: j})
	e := len(b.edges) - 1
	b.edgeIndex[k] = e

	a.adj = append(a.adj, j)
	a.Adj = append(a.Adj, c.ID)
	a.edges = append(a.edges, e)
	c.adj = append(c.adj, i)
	c.Adj = append(c.Adj, a.ID)
	c.edges = append(c.edges, e)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
