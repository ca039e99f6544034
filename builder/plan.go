// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// plan.go (stage 1): snapshot declared state without touching any collaborator
// state. Collects the scope, resolves direct-edge endpoints and kinds, and
// records which groups need parent backfill.

package builder

import (
	"fmt"

	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relations"
	"github.com/katalvlaran/kinship/relkind"
)

// plannedEdge is a direct edge with both endpoints resolved.
type plannedEdge struct {
	src, tgt *person.Person
	from, to string
	kind     relkind.Kind
}

// plannedGroup is a group plus the genders it must gain in materialize.
type plannedGroup struct {
	group *relations.Group
	needs []person.Gender
}

type plan struct {
	// scope holds every person referenced by a declared edge or group, in
	// first-seen order. materialize appends synthesized parents.
	scope  []*person.Person
	seen   map[*person.Person]struct{}
	edges  []plannedEdge
	groups []plannedGroup
}

func (p *plan) addScope(ps ...*person.Person) {
	for _, x := range ps {
		if x == nil {
			continue
		}
		if _, ok := p.seen[x]; ok {
			continue
		}
		p.seen[x] = struct{}{}
		p.scope = append(p.scope, x)
	}
}

// plan builds the immutable part of the target: resolved direct edges and
// backfill requirements. Failing edges are skipped individually.
func (b *Builder) plan(res *Result, edges []relations.Edge, groups []*relations.Group) *plan {
	p := &plan{seen: make(map[*person.Person]struct{})}

	for _, e := range edges {
		p.addScope(e.Source, e.Target)
	}
	for _, g := range groups {
		p.addScope(g.Parents()...)
		p.addScope(g.Children()...)
	}

	for i, e := range edges {
		b.guard(res, MethodPlan, fmt.Sprintf("edge #%d %s", i, e.Kind.Name), func() (string, error) {
			pe, reason, err := b.planEdge(e)
			if err != nil {
				return reason, err
			}
			p.edges = append(p.edges, pe)
			return "", nil
		})
	}

	for _, g := range groups {
		p.groups = append(p.groups, plannedGroup{group: g, needs: backfillNeeds(g)})
	}

	return p
}

// planEdge resolves both endpoints and the canonical kind of e.
func (b *Builder) planEdge(e relations.Edge) (plannedEdge, string, error) {
	kind := e.Kind
	if kind.Name == "" {
		return plannedEdge{}, ReasonInvalid, relkind.ErrEmptyName
	}
	if b.kinds != nil {
		k, ok := b.kinds.Lookup(kind.Name)
		if !ok {
			return plannedEdge{}, ReasonUnknownKind, ErrUnknownKind
		}
		kind = k
	}
	if kind.Parental {
		// Parent/child relations come from groups only.
		return plannedEdge{}, ReasonInvalid, fmt.Errorf("%s: %w", kind.Name, relations.ErrParentalKind)
	}

	from, ok := b.host.Resolve(e.Source)
	if !ok {
		return plannedEdge{}, ReasonUnresolved, fmt.Errorf("source %s: %w", e.Source.Label(), ErrUnresolved)
	}
	to, ok := b.host.Resolve(e.Target)
	if !ok {
		return plannedEdge{}, ReasonUnresolved, fmt.Errorf("target %s: %w", e.Target.Label(), ErrUnresolved)
	}
	if from == to {
		// Proxy and world record of the same person; nothing to relate.
		return plannedEdge{}, ReasonInvalid, fmt.Errorf("%s relates to itself: %w", from, relations.ErrSelfEdge)
	}

	return plannedEdge{src: e.Source, tgt: e.Target, from: from, to: to, kind: kind}, "", nil
}

// backfillNeeds returns the genders of the parents g must gain.
// Only groups with at least two children are backfilled.
func backfillNeeds(g *relations.Group) []person.Gender {
	if len(g.Children()) < 2 {
		return nil
	}
	parents := g.Parents()
	switch len(parents) {
	case 0:
		return []person.Gender{person.GenderFemale, person.GenderMale}
	case 1:
		return []person.Gender{parents[0].Gender.Opposite()}
	default:
		return nil
	}
}
