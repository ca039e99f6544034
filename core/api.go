// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: The Stats snapshot.
// Policy:
//   - No algorithms or hidden state here.
//   - Stats() is an O(V+E) snapshot; rely on it for quick diagnostics.

package core

// GraphStats is a point-in-time summary of a Graph.
type GraphStats struct {
	VertexCount int
	EdgeCount   int
	// KindCounts maps each relation kind to its number of edges.
	KindCounts map[string]int
}

// Stats produces a read-only snapshot of catalog sizes and per-kind edge counts.
//
// Implementation:
//   - Stage 1: Under muVert.RLock, snapshot the vertex count.
//   - Stage 2: Under muEdgeAdj.RLock, count edges by kind.
//
// Complexity:
//   - Time O(V+E), Space O(K) for K distinct kinds.
func (g *Graph) Stats() *GraphStats {
	g.muVert.RLock()
	stats := GraphStats{VertexCount: len(g.vertices)}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	stats.EdgeCount = len(g.edges)
	stats.KindCounts = make(map[string]int)
	for _, e := range g.edges {
		stats.KindCounts[e.Kind]++
	}
	g.muEdgeAdj.RUnlock()

	return &stats
}
