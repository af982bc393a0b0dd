// internal/board/placement.go
//
// Lookups and placement rules.
// Responsibilities:
//   - Resolve tiles, intersections and edges by id.
//   - Settlement distance rule and road-network connectivity.
//   - City upgrades and robber moves.
//
// Check* functions never mutate; Place*/Upgrade*/MoveRobber run the matching
// check first and only then claim.

package board

import "fmt"

// Tile returns the tile with the given id.
func (b *Board) Tile(id int) (*Tile, bool) {
	if id < 0 || id >= len(b.Tiles) {
		return nil, false
	}
	return &b.Tiles[id], true
}

// Intersection returns the intersection with the given canonical key.
func (b *Board) Intersection(id string) (*Intersection, bool) {
	i, ok := b.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return &b.nodes[i], true
}

// Edge returns the edge with the given canonical key.
func (b *Board) Edge(id string) (*Edge, bool) {
	i, ok := b.edgeIndex[id]
	if !ok {
		return nil, false
	}
	return &b.edges[i], true
}

// Intersections returns every intersection in creation order.
func (b *Board) Intersections() []Intersection { return b.nodes }

// Edges returns every edge in creation order.
func (b *Board) Edges() []Edge { return b.edges }

// Endpoints returns the keys of both ends of e.
func (b *Board) Endpoints(e *Edge) (string, string) {
	return b.nodes[e.a].ID, b.nodes[e.b].ID
}

// IntersectionsOfTile returns the six intersections bounding a tile.
func (b *Board) IntersectionsOfTile(tileID int) []*Intersection {
	t, ok := b.Tile(tileID)
	if !ok {
		return nil
	}
	out := make([]*Intersection, 0, 6)
	for _, i := range t.corners {
		out = append(out, &b.nodes[i])
	}
	return out
}

// TilesOfIntersection returns every tile that has the intersection as a corner.
func (b *Board) TilesOfIntersection(id string) []*Tile {
	idx, ok := b.nodeIndex[id]
	if !ok {
		return nil
	}
	var out []*Tile
	for ti := range b.Tiles {
		for _, c := range b.Tiles[ti].corners {
			if c == idx {
				out = append(out, &b.Tiles[ti])
				break
			}
		}
	}
	return out
}

// CheckSettlement validates a settlement for player at id. When needsRoad is
// set the intersection must touch one of the player's roads.
func (b *Board) CheckSettlement(player, id string, needsRoad bool) error {
	idx, ok := b.nodeIndex[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIntersection, id)
	}
	n := &b.nodes[idx]
	if n.Owner != "" {
		return ErrOccupied
	}
	for _, j := range n.adj {
		if b.nodes[j].Owner != "" {
			return ErrTooClose
		}
	}
	if needsRoad && !b.touchesRoad(idx, player) {
		return ErrNotConnected
	}
	return nil
}

// PlaceSettlement claims id for player.
func (b *Board) PlaceSettlement(player, id string, needsRoad bool) error {
	if err := b.CheckSettlement(player, id, needsRoad); err != nil {
		return err
	}
	n, _ := b.Intersection(id)
	n.Owner = player
	n.Building = Settlement
	return nil
}

// CheckCity validates upgrading the player's own settlement at id.
func (b *Board) CheckCity(player, id string) error {
	n, ok := b.Intersection(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIntersection, id)
	}
	if n.Owner != player || n.Building != Settlement {
		return ErrNotOwnSettlement
	}
	return nil
}

// UpgradeCity turns the player's settlement at id into a city.
func (b *Board) UpgradeCity(player, id string) error {
	if err := b.CheckCity(player, id); err != nil {
		return err
	}
	n, _ := b.Intersection(id)
	n.Building = City
	return nil
}

// CheckRoad validates a road for player on edgeID. A non-empty anchor requires
// the edge to touch that intersection (setup placement); otherwise the edge
// must extend the player's network.
func (b *Board) CheckRoad(player, edgeID, anchor string) error {
	ei, ok := b.edgeIndex[edgeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, edgeID)
	}
	e := &b.edges[ei]
	if e.Owner != "" {
		return ErrOccupied
	}
	if anchor != "" {
		ai, ok := b.nodeIndex[anchor]
		if !ok || (e.a != ai && e.b != ai) {
			return ErrNotConnected
		}
		return nil
	}
	if b.extendsNetwork(e.a, ei, player) || b.extendsNetwork(e.b, ei, player) {
		return nil
	}
	return ErrNotConnected
}

// PlaceRoad claims edgeID for player.
func (b *Board) PlaceRoad(player, edgeID, anchor string) error {
	if err := b.CheckRoad(player, edgeID, anchor); err != nil {
		return err
	}
	e, _ := b.Edge(edgeID)
	e.Owner = player
	return nil
}

// MoveRobber puts the robber on tileID.
func (b *Board) MoveRobber(tileID int) error {
	if _, ok := b.Tile(tileID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTile, tileID)
	}
	if tileID == b.Robber {
		return ErrRobberUnmoved
	}
	b.Robber = tileID
	return nil
}

// touchesRoad reports whether any edge at node idx belongs to player.
func (b *Board) touchesRoad(idx int, player string) bool {
	for _, e := range b.nodes[idx].edges {
		if b.edges[e].Owner == player {
			return true
		}
	}
	return false
}

// extendsNetwork reports whether a new edge (skip) reaches the player's
// network through node idx. Opponent buildings cut the network.
func (b *Board) extendsNetwork(idx, skip int, player string) bool {
	n := &b.nodes[idx]
	if n.Owner == player {
		return true
	}
	if n.Owner != "" {
		return false
	}
	for _, e := range n.edges {
		if e != skip && b.edges[e].Owner == player {
			return true
		}
	}
	return false
}
