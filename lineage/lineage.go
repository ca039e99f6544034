// SPDX-License-Identifier: MIT

// Package lineage answers ancestry questions over applied Child→Parent
// relations of one kind in a core.Graph.
//
// Ancestors and Descendants are breadth-first, nearest relatives first.
// Generations layers every node that takes part in a relation of the kind,
// eldest first, and fails with ErrCycleDetected when someone is their own
// ancestor.
//
// Complexity:
//   - Ancestors/Descendants: O(V + E) over the reachable part.
//   - Generations:           O(V + E) over relations of the kind.
package lineage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/kinship/core"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("lineage: graph is nil")

	// ErrEmptyKind is returned when no relation kind is given.
	ErrEmptyKind = errors.New("lineage: relation kind is empty")

	// ErrNodeNotFound is returned when the start node is absent.
	ErrNodeNotFound = errors.New("lineage: node not found")

	// ErrCycleDetected is returned when the parent relation loops back.
	ErrCycleDetected = errors.New("lineage: ancestry cycle detected")
)

// Relative is one node reached from the start, Depth steps away.
type Relative struct {
	ID    string
	Depth int
}

// Option configures a traversal.
type Option func(*options)

type options struct {
	ctx      context.Context
	maxDepth int
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithContext enables cancellation. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithMaxDepth stops traversal beyond depth d. Zero means unlimited.
// Panics when d < 0.
func WithMaxDepth(d int) Option {
	if d < 0 {
		panic(fmt.Sprintf("lineage: WithMaxDepth(%d)", d))
	}
	return func(o *options) { o.maxDepth = d }
}

// Ancestors returns the parents, grandparents and so on of node.
func Ancestors(g *core.Graph, node, kind string, opts ...Option) ([]Relative, error) {
	return walk(g, node, kind, upward, opts)
}

// Descendants returns the children, grandchildren and so on of node.
func Descendants(g *core.Graph, node, kind string, opts ...Option) ([]Relative, error) {
	return walk(g, node, kind, downward, opts)
}

type direction int

const (
	upward direction = iota
	downward
)

type queueItem struct {
	id    string
	depth int
}

// walk is a breadth-first traversal following kind edges in dir.
func walk(g *core.Graph, start, kind string, dir direction, opts []Option) ([]Relative, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("%q: %w", start, ErrNodeNotFound)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	visited := map[string]bool{start: true}
	queue := []queueItem{{id: start}}
	var out []Relative
	for len(queue) > 0 {
		select {
		case <-o.ctx.Done():
			return nil, o.ctx.Err()
		default:
		}
		item := queue[0]
		queue = queue[1:]
		next := item.depth + 1
		if o.maxDepth > 0 && next > o.maxDepth {
			continue
		}

		nbrs, err := step(g, item.id, kind, dir)
		if err != nil {
			return nil, err
		}
		for _, id := range nbrs {
			if visited[id] {
				continue
			}
			visited[id] = true
			out = append(out, Relative{ID: id, Depth: next})
			queue = append(queue, queueItem{id: id, depth: next})
		}
	}

	return out, nil
}

// step returns the one-hop relatives of id, in edge creation order.
func step(g *core.Graph, id, kind string, dir direction) ([]string, error) {
	var (
		es  []*core.Edge
		err error
	)
	if dir == upward {
		es, err = g.OutEdges(id)
	} else {
		es, err = g.InEdges(id)
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(es))
	for _, e := range es {
		if e.Kind != kind {
			continue
		}
		if dir == upward {
			out = append(out, e.To)
		} else {
			out = append(out, e.From)
		}
	}

	return out, nil
}

// Vertex visitation states for Generations.
const (
	white = iota
	gray
	black
)

// Generations groups every node touching a kind relation into layers:
// layer 0 holds nodes without parents, and a node sits one layer below its
// deepest parent. Layers are sorted by ID.
//
// Errors:
//   - ErrGraphNil, ErrEmptyKind, ErrCycleDetected (wrapping the offending node).
func Generations(g *core.Graph, kind string, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if kind == "" {
		return nil, ErrEmptyKind
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	parents := make(map[string][]string)
	var nodes []string
	seen := make(map[string]bool)
	for _, e := range g.EdgesOfKind(kind) {
		parents[e.From] = append(parents[e.From], e.To)
		for _, id := range []string{e.From, e.To} {
			if !seen[id] {
				seen[id] = true
				nodes = append(nodes, id)
			}
		}
	}
	sort.Strings(nodes)

	state := make(map[string]int, len(nodes))
	gen := make(map[string]int, len(nodes))
	var visit func(id string) error
	visit = func(id string) error {
		select {
		case <-o.ctx.Done():
			return o.ctx.Err()
		default:
		}
		switch state[id] {
		case gray:
			return fmt.Errorf("at %q: %w", id, ErrCycleDetected)
		case black:
			return nil
		}
		state[id] = gray
		level := 0
		for _, p := range parents[id] {
			if err := visit(p); err != nil {
				return err
			}
			level = max(level, gen[p]+1)
		}
		state[id] = black
		gen[id] = level

		return nil
	}

	depth := 0
	for _, id := range nodes {
		if err := visit(id); err != nil {
			return nil, err
		}
		depth = max(depth, gen[id]+1)
	}

	layers := make([][]string, depth)
	for _, id := range nodes {
		layers[gen[id]] = append(layers[gen[id]], id)
	}

	return layers, nil
}
