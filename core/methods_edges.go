// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveRelation/HasEdge/Edges/EdgesOfKind/EdgeCount
//       and nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by Edge.ID asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.
// AI-HINT (file):
//   - A second AddEdge with the same (from, to, kind) returns ErrDuplicateEdge; different kinds coexist.
//   - AddEdge creates missing endpoints; use HasVertex first when auto-creation is not wanted.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is a private textual prefix for edge identifiers ("e1", "e2", …).
const edgeIDPrefix = 'e'

// AddEdge creates the directed relation from -[kind]-> to.
//
// Steps:
//  1. Validate IDs and kind; reject self-loops.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, reject an existing (from, to, kind) triple.
//  4. Generate eid atomically, store the edge, link forward and reverse indexes.
//
// Complexity: O(k) where k is the number of edges already joining from→to.
func (g *Graph) AddEdge(from, to, kind string) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if kind == "" {
		return "", ErrEmptyKind
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if findLocked(g, from, to, kind) != nil {
		return "", ErrDuplicateEdge
	}

	eid := nextEdgeID(g)
	e := &Edge{ID: eid, From: from, To: to, Kind: kind}
	g.edges[eid] = e
	linkEdge(g, e)

	return eid, nil
}

// RemoveRelation deletes the edge matching (from, to, kind).
//
// Errors:
//   - ErrEdgeNotFound when no such triple exists.
//
// Complexity: O(k).
func (g *Graph) RemoveRelation(from, to, kind string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e := findLocked(g, from, to, kind)
	if e == nil {
		return ErrEdgeNotFound
	}
	unlinkEdge(g, e)

	return nil
}

// HasEdge reports whether the relation from -[kind]-> to exists.
// Complexity: O(k).
func (g *Graph) HasEdge(from, to, kind string) bool {
	if from == "" || to == "" || kind == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return findLocked(g, from, to, kind) != nil
}

// Edges returns all edges sorted by Edge.ID asc.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	var e *Edge
	for _, e = range g.edges {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}

// EdgesOfKind returns the edges whose Kind equals kind, sorted by Edge.ID asc.
// Complexity: O(E log E).
func (g *Graph) EdgesOfKind(kind string) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var out []*Edge
	var e *Edge
	for _, e = range g.edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sortEdges(out)

	return out
}

// EdgeCount returns the total number of edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// findLocked returns the edge matching the triple or nil. Caller holds muEdgeAdj.
func findLocked(g *Graph, from, to, kind string) *Edge {
	var e *Edge
	for eid := range g.adjacencyList[from][to] {
		e = g.edges[eid]
		if e != nil && e.Kind == kind {
			return e
		}
	}

	return nil
}

// sortEdges orders edges by their numeric sequence so "e2" precedes "e10".
func sortEdges(es []*Edge) {
	sort.Slice(es, func(i, j int) bool {
		if len(es[i].ID) != len(es[j].ID) {
			return len(es[i].ID) < len(es[j].ID)
		}
		return es[i].ID < es[j].ID
	})
}

// nextEdgeID returns a new unique textual edge ID ("e" + decimal).
// Safe for concurrent callers; atomic.AddUint64 reserves the number.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}
