// internal/board/longest.go
//
// Longest road search.
//
// Exhaustive depth-first search over the player's edges, starting from every
// endpoint. Each edge is used at most once per path (released on backtrack).
// A path may end at an intersection held by another player but never passes
// through it. Exponential in general; player networks stay under ~15 edges.

package board

type step struct{ to, edge int }

// LongestRoad returns the length (in edges) of the player's longest road.
func (b *Board) LongestRoad(player string) int {
	adj := make(map[int][]step)
	for ei := range b.edges {
		e := &b.edges[ei]
		if e.Owner != player {
			continue
		}
		adj[e.a] = append(adj[e.a], step{to: e.b, edge: ei})
		adj[e.b] = append(adj[e.b], step{to: e.a, edge: ei})
	}
	if len(adj) == 0 {
		return 0
	}

	used := make([]bool, len(b.edges))
	best := 0
	var dfs func(node, length int)
	dfs = func(node, length int) {
		if length > best {
			best = length
		}
		if length > 0 {
			if owner := b.nodes[node].Owner; owner != "" && owner != player {
				return
			}
		}
		for _, s := range adj[node] {
			if used[s.edge] {
				continue
			}
			used[s.edge] = true
			dfs(s.to, length+1)
			used[s.edge] = false
		}
	}
	for node := range adj {
		dfs(node, 0)
	}
	return best
}
