// SPDX-License-Identifier: MIT

// Package compat holds the spare-identifier pool and the greedy swap heuristic
// used to raise the hidden pairwise compatibility score of newly related persons.
//
// The score itself is opaque to this package: callers pass an OffsetFunc
// (typically substrate.Host.CompatibilityOffset). Offset provides a
// deterministic default implementation.
//
// Concurrency: Pool is safe for concurrent use; Improve is not atomic with
// respect to other pool users and is meant to run inside one build.
package compat

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNilSource indicates EnsureSize was called without an identifier source.
	ErrNilSource = errors.New("compat: nil identifier source")

	// ErrNotInPool indicates Take was asked for an identifier the pool does not hold.
	ErrNotInPool = errors.New("compat: identifier not in pool")
)

// Pool sizing constants; see SizeFor.
const (
	perEdge  = 6
	perCap   = 12
	minFloor = 50
)

// SizeFor returns the pool floor for a build over edgeCount declared edges:
// max(min(6·edgeCount, 12), 50).
//
// The first term is capped at 12 before the floor of 50 applies, so any
// non-negative edgeCount yields 50.
func SizeFor(edgeCount int) int {
	return max(min(perEdge*edgeCount, perCap), minFloor)
}

// IDSource hands out fresh numeric identifiers.
type IDSource interface {
	NextNumericID() int
}

// IDSourceFunc adapts a plain function to IDSource.
type IDSourceFunc func() int

// NextNumericID calls f.
func (f IDSourceFunc) NextNumericID() int { return f() }

// Pool is a multiset of spare numeric identifiers.
// Insertion order is kept so scans are reproducible.
type Pool struct {
	mu  sync.Mutex
	ids []int
}

// NewPool returns a pool seeded with ids (copied).
func NewPool(ids ...int) *Pool {
	p := &Pool{ids: make([]int, len(ids))}
	copy(p.ids, ids)

	return p
}

// EnsureSize draws identifiers from src until the pool holds at least n.
// It never shrinks the pool. Returns how many identifiers were drawn.
func (p *Pool) EnsureSize(n int, src IDSource) (int, error) {
	if src == nil {
		return 0, fmt.Errorf("EnsureSize(%d): %w", n, ErrNilSource)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	drawn := 0
	for len(p.ids) < n {
		p.ids = append(p.ids, src.NextNumericID())
		drawn++
	}

	return drawn, nil
}

// Take removes one occurrence of id.
func (p *Pool) Take(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, v := range p.ids {
		if v == id {
			p.ids = append(p.ids[:i], p.ids[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("Take(%d): %w", id, ErrNotInPool)
}

// Return puts id back into the pool.
func (p *Pool) Return(id int) {
	p.mu.Lock()
	p.ids = append(p.ids, id)
	p.mu.Unlock()
}

// Contains reports whether at least one occurrence of id is pooled.
func (p *Pool) Contains(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range p.ids {
		if v == id {
			return true
		}
	}

	return false
}

// Len returns the number of pooled identifiers.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.ids)
}

// IDs returns a snapshot of the pooled identifiers in insertion order.
func (p *Pool) IDs() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.ids))
	copy(out, p.ids)

	return out
}
