// SPDX-License-Identifier: MIT

// Package substrate adapts core.Graph into the relation store the builder
// writes to, and maps persons to simulation node keys.
//
// Node keys:
//   - Active person              → "pawn:<uuid>"
//   - Hidden person with WorldRef → WorldRef (must already exist as a world node)
//   - Hidden person without one   → "pawn:<uuid>"
//   - Placeholder or nil          → unresolvable
//
// A Hidden person that stands in for a world entity therefore owns two keys:
// its resolved world node and its proxy node. The builder clears the proxy so
// relations never live on both.
package substrate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/core"
	"github.com/katalvlaran/kinship/person"
)

// PawnPrefix prefixes node keys derived from person identity.
const PawnPrefix = "pawn:"

// ErrEmptyWorldRef indicates AddWorldEntity was called with an empty key.
var ErrEmptyWorldRef = errors.New("substrate: empty world reference")

// HostOption configures a Host.
type HostOption func(h *Host)

// WithGraph makes the host operate on g instead of a fresh graph.
// Panics on nil.
func WithGraph(g *core.Graph) HostOption {
	if g == nil {
		panic("substrate: WithGraph(nil)")
	}
	return func(h *Host) { h.g = g }
}

// WithOffset overrides the compatibility score function.
// Panics on nil.
func WithOffset(fn compat.OffsetFunc) HostOption {
	if fn == nil {
		panic("substrate: WithOffset(nil)")
	}
	return func(h *Host) { h.offset = fn }
}

// Host is the simulation-side relation store.
type Host struct {
	g      *core.Graph
	offset compat.OffsetFunc
}

// NewHost returns a Host over a fresh graph scored by compat.Offset.
func NewHost(opts ...HostOption) *Host {
	h := &Host{offset: compat.Offset}
	for _, opt := range opts {
		opt(h)
	}
	if h.g == nil {
		h.g = core.NewGraph()
	}

	return h
}

// Graph exposes the underlying graph for read-side queries (lineage, CLI).
func (h *Host) Graph() *core.Graph { return h.g }

// AddWorldEntity registers a pre-existing world node that Hidden persons may reference.
func (h *Host) AddWorldEntity(ref string) error {
	if ref == "" {
		return ErrEmptyWorldRef
	}

	return h.g.AddVertex(ref)
}

// ProxyNode returns the identity-derived node key of p, regardless of kind.
func (h *Host) ProxyNode(p *person.Person) string {
	if p == nil {
		return ""
	}

	return PawnPrefix + p.ID.String()
}

// Resolve maps p to the node its relations are stored on.
func (h *Host) Resolve(p *person.Person) (string, bool) {
	if p == nil {
		return "", false
	}
	switch p.Kind {
	case person.KindActive:
		return h.ProxyNode(p), true
	case person.KindHidden:
		if p.WorldRef == "" {
			return h.ProxyNode(p), true
		}
		if !h.g.HasVertex(p.WorldRef) {
			return "", false
		}
		return p.WorldRef, true
	default:
		return "", false
	}
}

// ClearAllRelations drops every relation touching node, in both directions.
func (h *Host) ClearAllRelations(node string) {
	// Only ErrEmptyVertexID is possible; an empty key has nothing to clear.
	_, _ = h.g.ClearIncident(node)
}

// RemovePerson drops the proxy node of p with every relation on it. World
// entities are left alone. A person that never reached the graph is a no-op.
func (h *Host) RemovePerson(p *person.Person) error {
	node := h.ProxyNode(p)
	if node == "" {
		return nil
	}
	if err := h.g.RemoveVertex(node); err != nil && !errors.Is(err, core.ErrVertexNotFound) {
		return fmt.Errorf("RemovePerson(%s): %w", node, err)
	}

	return nil
}

// DirectRelations returns copies of the relations touching node, ordered by
// creation. Unknown nodes have none.
func (h *Host) DirectRelations(node string) []core.Edge {
	es, err := h.g.IncidentEdges(node)
	if err != nil {
		return nil
	}
	out := make([]core.Edge, len(es))
	for i, e := range es {
		out[i] = *e
	}

	return out
}

// HasDirectRelation reports whether node -[kind]-> other exists.
func (h *Host) HasDirectRelation(node, kind, other string) bool {
	return h.g.HasEdge(node, other, kind)
}

// AddDirectRelation stores node -[kind]-> other.
func (h *Host) AddDirectRelation(node, kind, other string) error {
	if _, err := h.g.AddEdge(node, other, kind); err != nil {
		return fmt.Errorf("AddDirectRelation(%s -%s-> %s): %w", node, kind, other, err)
	}

	return nil
}

// RemoveDirectRelation deletes node -[kind]-> other.
func (h *Host) RemoveDirectRelation(node, kind, other string) error {
	if err := h.g.RemoveRelation(node, other, kind); err != nil {
		return fmt.Errorf("RemoveDirectRelation(%s -%s-> %s): %w", node, kind, other, err)
	}

	return nil
}

// CompatibilityOffset scores candidateID against numericID.
func (h *Host) CompatibilityOffset(numericID, candidateID int) float64 {
	return h.offset(numericID, candidateID)
}
