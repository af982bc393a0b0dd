// internal/board/state.go
//
// Read-only projection of the board for broadcast.

package board

// State is the JSON shape clients receive.
type State struct {
	Tiles          []Tile                  `json:"tiles"`
	Intersections  map[string]Intersection `json:"intersections"`
	Roads          map[string]Edge         `json:"roads"`
	RobberPosition int                     `json:"robberPosition"`
}

// State copies the board into a State. Adjacency slices are shared; they are
// never written after generation.
func (b *Board) State() State {
	s := State{
		Tiles:          append([]Tile(nil), b.Tiles...),
		Intersections:  make(map[string]Intersection, len(b.nodes)),
		Roads:          make(map[string]Edge, len(b.edges)),
		RobberPosition: b.Robber,
	}
	for _, n := range b.nodes {
		s.Intersections[n.ID] = n
	}
	for _, e := range b.edges {
		s.Roads[e.ID] = e
	}
	return s
}
