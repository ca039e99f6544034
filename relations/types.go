// SPDX-License-Identifier: MIT

// Package relations owns the declared relationship state of an editing
// session: free-form edges between persons and parent/child groups.
//
// Declared state is intent, not truth. Duplicates are allowed here and
// collapsed by the builder when the state is compiled into the relation graph.
package relations

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relkind"
)

// MaxParents is the number of parent slots per group.
const MaxParents = 2

// Sentinel errors for declared-state operations.
var (
	// ErrNoRoster indicates the manager was used before a roster was attached.
	ErrNoRoster = errors.New("relations: no roster")

	// ErrParentalKind indicates an edge was declared with the parental kind;
	// parent/child relations are declared through groups.
	ErrParentalKind = errors.New("relations: parental kind must be declared through a group")

	// ErrUnknownKind indicates a kind the registry does not know.
	ErrUnknownKind = errors.New("relations: unknown relationship kind")

	// ErrSelfEdge indicates source and target are the same person.
	ErrSelfEdge = errors.New("relations: edge to self")

	// ErrEdgeNotFound indicates no declared edge matches.
	ErrEdgeNotFound = errors.New("relations: edge not found")

	// ErrGroupNotFound indicates the group is not owned by this manager.
	ErrGroupNotFound = errors.New("relations: group not found")

	// ErrGroupFull indicates both parent slots are taken.
	ErrGroupFull = errors.New("relations: group already has two parents")

	// ErrAlreadyMember indicates the person already belongs to the group.
	ErrAlreadyMember = errors.New("relations: already a group member")

	// ErrNotMember indicates the person is not in the requested role.
	ErrNotMember = errors.New("relations: not a group member")

	// ErrNotPlaceholder indicates the person is not an offered placeholder.
	ErrNotPlaceholder = errors.New("relations: not an offered placeholder")
)

// Edge is one declared relation Source -[Kind]-> Target.
type Edge struct {
	Source *person.Person
	Target *person.Person
	Kind   relkind.Kind
}

// Matches reports whether e is the triple (src, tgt, kind).
func (e Edge) Matches(src, tgt *person.Person, kind relkind.Kind) bool {
	return e.Source == src && e.Target == tgt && e.Kind.Equal(kind)
}

// Involves reports whether p is either endpoint.
func (e Edge) Involves(p *person.Person) bool {
	return e.Source == p || e.Target == p
}

// Group is a declared set of up to two parents and any number of children.
//
// Groups are not safe for concurrent mutation; the manager and the builder
// take turns owning them.
type Group struct {
	ID       uuid.UUID
	parents  []*person.Person
	children []*person.Person
}

func newGroup() *Group {
	return &Group{ID: uuid.New()}
}

// Parents returns the parents in insertion order.
func (g *Group) Parents() []*person.Person { return slices.Clone(g.parents) }

// Children returns the children in insertion order.
func (g *Group) Children() []*person.Person { return slices.Clone(g.children) }

// Inert reports whether the group has no children and contributes nothing to the graph.
func (g *Group) Inert() bool { return len(g.children) == 0 }

// Has reports whether p is a parent or a child of g.
func (g *Group) Has(p *person.Person) bool {
	return slices.Contains(g.parents, p) || slices.Contains(g.children, p)
}

// AppendParent fills the next parent slot with p.
//
// Errors:
//   - person.ErrNilPerson, ErrAlreadyMember, ErrGroupFull.
func (g *Group) AppendParent(p *person.Person) error {
	if p == nil {
		return person.ErrNilPerson
	}
	if g.Has(p) {
		return ErrAlreadyMember
	}
	if len(g.parents) >= MaxParents {
		return ErrGroupFull
	}
	g.parents = append(g.parents, p)

	return nil
}

// AppendChild adds p as the last child.
//
// Errors:
//   - person.ErrNilPerson, ErrAlreadyMember.
func (g *Group) AppendChild(p *person.Person) error {
	if p == nil {
		return person.ErrNilPerson
	}
	if g.Has(p) {
		return ErrAlreadyMember
	}
	g.children = append(g.children, p)

	return nil
}

// remove drops p from both roles and reports whether anything changed.
func (g *Group) remove(p *person.Person) bool {
	before := len(g.parents) + len(g.children)
	g.parents = slices.DeleteFunc(g.parents, func(x *person.Person) bool { return x == p })
	g.children = slices.DeleteFunc(g.children, func(x *person.Person) bool { return x == p })

	return len(g.parents)+len(g.children) != before
}

// replace swaps old for repl in place and reports whether anything changed.
func (g *Group) replace(old, repl *person.Person) bool {
	changed := false
	for _, list := range [][]*person.Person{g.parents, g.children} {
		for i, x := range list {
			if x == old {
				list[i] = repl
				changed = true
			}
		}
	}

	return changed
}
