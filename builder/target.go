// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// target.go (stage 3): the immutable, ordered set of relations that must exist
// after Build. Direct edges come first in declaration order, then Child→Parent
// edges per group. Repeated triples collapse onto their first occurrence.

package builder

import (
	"fmt"

	"github.com/katalvlaran/kinship/person"
)

// triple identifies one relation from -[kind]-> to.
type triple struct {
	from, kind, to string
}

func (t triple) String() string { return t.from + " -" + t.kind + "-> " + t.to }

// targetRel is a triple plus the persons it was derived from.
type targetRel struct {
	triple
	src, tgt *person.Person
	// optimize runs the compatibility heuristic on tgt when the relation is new.
	optimize bool
}

// targetSet is an insertion-ordered set of relations.
type targetSet struct {
	rels  []targetRel
	index map[triple]struct{}
}

func newTargetSet() *targetSet {
	return &targetSet{index: make(map[triple]struct{})}
}

// add appends r unless its triple is already present.
func (t *targetSet) add(r targetRel) bool {
	if _, dup := t.index[r.triple]; dup {
		return false
	}
	t.index[r.triple] = struct{}{}
	t.rels = append(t.rels, r)

	return true
}

func (t *targetSet) has(tr triple) bool {
	_, ok := t.index[tr]
	return ok
}

// target derives the relations that must exist. Group members that do not
// resolve are skipped with their pairs; the rest of the group still applies.
func (b *Builder) target(res *Result, p *plan) *targetSet {
	t := newTargetSet()
	for _, e := range p.edges {
		t.add(targetRel{
			triple:   triple{from: e.from, kind: e.kind.Name, to: e.to},
			src:      e.src,
			tgt:      e.tgt,
			optimize: e.kind.NeedsCompatibilityOptimization,
		})
	}

	parental := b.parentKind()
	for _, pg := range p.groups {
		g := pg.group
		if g.Inert() {
			continue
		}
		b.guard(res, MethodTarget, "group "+g.ID.String(), func() (string, error) {
			parents := make(map[*person.Person]string)
			var unresolved []*person.Person
			for _, parent := range g.Parents() {
				node, ok := b.host.Resolve(parent)
				if !ok {
					unresolved = append(unresolved, parent)
					continue
				}
				parents[parent] = node
			}
			for _, child := range g.Children() {
				from, ok := b.host.Resolve(child)
				if !ok {
					unresolved = append(unresolved, child)
					continue
				}
				for _, parent := range g.Parents() {
					to, ok := parents[parent]
					if !ok || to == from {
						continue
					}
					t.add(targetRel{
						triple:   triple{from: from, kind: parental.Name, to: to},
						src:      child,
						tgt:      parent,
						optimize: parental.NeedsCompatibilityOptimization,
					})
				}
			}
			if len(unresolved) > 0 {
				return ReasonUnresolved, fmt.Errorf("%d member(s), first %s: %w",
					len(unresolved), unresolved[0].Label(), ErrUnresolved)
			}
			return "", nil
		})
	}

	return t
}
