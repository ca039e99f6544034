// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood APIs (OutEdges, InEdges, IncidentEdges, ClearIncident)
//       and the index maintenance helpers linkEdge/unlinkEdge.
// Determinism:
//   - Edge slices are sorted by Edge.ID sequence.
// Concurrency:
//   - Read operations hold muVert then muEdgeAdj read locks.
//   - Helpers are called only under the muEdgeAdj write lock by mutating code.

package core

// OutEdges returns the edges leaving id, sorted by Edge.ID.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d), d = out-degree.
func (g *Graph) OutEdges(id string) ([]*Edge, error) {
	if err := g.checkVertex(id); err != nil {
		return nil, err
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var out []*Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid := range edgeSet {
			out = append(out, g.edges[eid])
		}
	}
	sortEdges(out)

	return out, nil
}

// InEdges returns the edges arriving at id, sorted by Edge.ID.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d), d = in-degree.
func (g *Graph) InEdges(id string) ([]*Edge, error) {
	if err := g.checkVertex(id); err != nil {
		return nil, err
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.inbound[id]))
	for eid := range g.inbound[id] {
		out = append(out, g.edges[eid])
	}
	sortEdges(out)

	return out, nil
}

// IncidentEdges returns every edge touching id in either direction, once each,
// sorted by Edge.ID.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
func (g *Graph) IncidentEdges(id string) ([]*Edge, error) {
	if err := g.checkVertex(id); err != nil {
		return nil, err
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := incidentLocked(g, id)
	sortEdges(out)

	return out, nil
}

// ClearIncident removes every edge touching id and keeps the vertex itself.
// It returns the number of removed edges. A missing vertex is not an error:
// there is nothing to clear.
//
// Errors:
//   - ErrEmptyVertexID.
//
// Complexity: O(deg(v)).
func (g *Graph) ClearIncident(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	incident := incidentLocked(g, id)
	for _, e := range incident {
		unlinkEdge(g, e)
	}

	return len(incident), nil
}

func (g *Graph) checkVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if !g.HasVertex(id) {
		return ErrVertexNotFound
	}

	return nil
}

// incidentLocked collects the edges touching id. Caller holds muEdgeAdj.
func incidentLocked(g *Graph, id string) []*Edge {
	seen := make(map[string]struct{})
	var out []*Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid := range edgeSet {
			seen[eid] = struct{}{}
			out = append(out, g.edges[eid])
		}
	}
	for eid := range g.inbound[id] {
		if _, dup := seen[eid]; dup {
			continue // self-loop already collected
		}
		out = append(out, g.edges[eid])
	}

	return out
}

// linkEdge registers e in the forward and reverse indexes. Caller holds muEdgeAdj.
func linkEdge(g *Graph, e *Edge) {
	if g.adjacencyList[e.From] == nil {
		g.adjacencyList[e.From] = make(map[string]map[string]struct{})
	}
	if g.adjacencyList[e.From][e.To] == nil {
		g.adjacencyList[e.From][e.To] = make(map[string]struct{})
	}
	g.adjacencyList[e.From][e.To][e.ID] = struct{}{}

	if g.inbound[e.To] == nil {
		g.inbound[e.To] = make(map[string]struct{})
	}
	g.inbound[e.To][e.ID] = struct{}{}
}

// unlinkEdge removes e from the catalog and both indexes, pruning empty buckets.
// Caller holds muEdgeAdj.
func unlinkEdge(g *Graph, e *Edge) {
	delete(g.edges, e.ID)
	if m := g.adjacencyList[e.From][e.To]; m != nil {
		delete(m, e.ID)
		if len(m) == 0 {
			delete(g.adjacencyList[e.From], e.To)
		}
	}
	if m := g.inbound[e.To]; m != nil {
		delete(m, e.ID)
		if len(m) == 0 {
			delete(g.inbound, e.To)
		}
	}
}
