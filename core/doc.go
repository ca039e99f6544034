// SPDX-License-Identifier: MIT

// Package core provides the thread-safe, in-memory relation graph that backs
// the simulation substrate.
//
// The Graph G = (V,E) is a directed multigraph whose edges carry a relation
// kind instead of a weight:
//
//   - Vertices are simulation node keys ("pawn:<uuid>", "world:elder-1", …).
//   - Edges are directed triples (From, Kind, To). Several edges may join the
//     same ordered pair as long as their kinds differ; a second edge with the
//     same (From, To, Kind) triple is rejected with ErrDuplicateEdge.
//   - Self-loops are always rejected (ErrLoopNotAllowed).
//   - Forward adjacency adjacencyList[from][to][edgeID] and a reverse index
//     inbound[to][edgeID] keep HasEdge, OutEdges and InEdges cheap.
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj); lock order is always muVert -> muEdgeAdj.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error              // O(1), idempotent
//	HasVertex(id string) bool               // O(1)
//	RemoveVertex(id string) error           // O(deg(v)), drops incident edges
//
//	// Edge lifecycle
//	AddEdge(from, to, kind string) (edgeID string, err error) // O(k), k = edges between from and to
//	HasEdge(from, to, kind string) bool                        // O(k)
//	RemoveRelation(from, to, kind string) error                // O(k)
//
//	// Query
//	OutEdges(id) / InEdges(id) / IncidentEdges(id)  // sorted by Edge.ID
//	Edges() / EdgesOfKind(kind)                     // sorted by Edge.ID
//	EdgeCount() int / Stats() *GraphStats
//
//	// Maintenance
//	ClearIncident(id string) (int, error) // drop every edge touching id, keep the vertex
//
// Errors:
//
//	ErrEmptyVertexID  : zero-length vertex ID
//	ErrEmptyKind      : zero-length relation kind
//	ErrVertexNotFound : missing vertex
//	ErrEdgeNotFound   : missing edge
//	ErrLoopNotAllowed : relation from a vertex to itself
//	ErrDuplicateEdge  : (from, to, kind) already present
package core
