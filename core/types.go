// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Vertex, Edge, Graph declarations, sentinel errors and the NewGraph constructor.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrEmptyKind indicates that an edge was requested without a relation kind.
	ErrEmptyKind = errors.New("core: relation kind is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a relation from a vertex to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates an edge with the same (from, to, kind) already exists.
	ErrDuplicateEdge = errors.New("core: duplicate relation")
)

// Vertex represents a simulation node.
type Vertex struct {
	// ID is the unique node key for this Vertex.
	ID string
}

// Edge is one directed relation From -[Kind]-> To.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", …).
	ID string

	// From is the source vertex ID.
	From string

	// To is the destination vertex ID.
	To string

	// Kind is the relation kind name.
	Kind string
}

// Graph is the in-memory relation graph.
//
// muVert protects the vertices map; muEdgeAdj protects edges, adjacencyList and inbound.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges, adjacency and inbound

	// Storage
	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacencyList[from][to][edgeID] = struct{}{}
	adjacencyList map[string]map[string]map[string]struct{}
	// inbound[to][edgeID] = struct{}{}
	inbound map[string]map[string]struct{}
}

// NewGraph creates an empty Graph. Self-loops are always rejected.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		vertices:      make(map[string]*Vertex),
		edges:         make(map[string]*Edge),
		adjacencyList: make(map[string]map[string]map[string]struct{}),
		inbound:       make(map[string]map[string]struct{}),
	}
}
