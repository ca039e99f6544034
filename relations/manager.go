// SPDX-License-Identifier: MIT

package relations

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relkind"
)

// DefaultPlaceholderCount is the size of the offered placeholder set.
const DefaultPlaceholderCount = 3

// Roster is the person collaborator the manager keeps in sync.
type Roster interface {
	Add(p *person.Person) error
	Remove(id uuid.UUID) error
	Replace(old, repl *person.Person) error
	Contains(p *person.Person) bool
	All() []*person.Person
	Spawn(kind person.Kind, gender person.Gender, species *person.Species) *person.Person
}

// Kinds resolves kinds by name. A nil Kinds accepts any named non-parental kind.
type Kinds interface {
	Lookup(name string) (relkind.Kind, bool)
}

// Option configures a Manager.
type Option func(m *Manager)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("relations: WithLogger(nil)")
	}
	return func(m *Manager) { m.log = l }
}

// WithPlaceholderCount sets how many placeholders are offered at once.
// Panics when n < 0.
func WithPlaceholderCount(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("relations: WithPlaceholderCount(%d)", n))
	}
	return func(m *Manager) { m.placeholderCount = n }
}

// WithPlaceholderSpecies sets the species given to new placeholders.
func WithPlaceholderSpecies(s *person.Species) Option {
	return func(m *Manager) { m.placeholderSpecies = s }
}

// Manager owns declared edges and groups for one session and keeps them
// consistent with roster membership. All methods are synchronous.
type Manager struct {
	mu sync.Mutex

	roster Roster
	kinds  Kinds
	log    *zap.Logger

	edges  []Edge
	groups []*Group

	placeholderCount   int
	placeholderSpecies *person.Species
	placeholders       []*person.Person
}

// NewManager returns a manager bound to roster and kinds and offering the
// initial placeholder set.
func NewManager(roster Roster, kinds Kinds, opts ...Option) *Manager {
	m := &Manager{
		kinds:            kinds,
		log:              zap.NewNop(),
		placeholderCount: DefaultPlaceholderCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	if roster != nil {
		m.InitializeWithRoster(roster)
	}

	return m
}

// InitializeWithRoster attaches roster and resets declared state and the
// placeholder rotation.
func (m *Manager) InitializeWithRoster(roster Roster) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roster = roster
	m.edges = nil
	m.groups = nil
	m.placeholders = nil
	if roster == nil {
		return
	}
	m.refillLocked()
	m.log.Debug("Manager initialized", zap.Int("roster_size", len(roster.All())))
}

// AddPerson registers p with the roster.
func (m *Manager) AddPerson(p *person.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roster == nil {
		return ErrNoRoster
	}
	if err := m.roster.Add(p); err != nil {
		return fmt.Errorf("AddPerson: %w", err)
	}

	return nil
}

// ReplacePerson swaps old for repl in the roster and in every declared edge
// and group, keeping positions.
func (m *Manager) ReplacePerson(old, repl *person.Person) error {
	if old == nil || repl == nil {
		return fmt.Errorf("ReplacePerson: %w", person.ErrNilPerson)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roster == nil {
		return ErrNoRoster
	}
	if err := m.roster.Replace(old, repl); err != nil {
		return fmt.Errorf("ReplacePerson: %w", err)
	}

	for i := range m.edges {
		if m.edges[i].Source == old {
			m.edges[i].Source = repl
		}
		if m.edges[i].Target == old {
			m.edges[i].Target = repl
		}
	}
	for _, g := range m.groups {
		g.replace(old, repl)
	}

	return nil
}

// DeletePerson removes p from the roster and cascades: every declared edge
// referencing p is dropped and p leaves every group. Groups left without
// children stay in place as inert groups.
//
// A person the roster does not hold is still purged from declared state.
func (m *Manager) DeletePerson(p *person.Person) error {
	if p == nil {
		return fmt.Errorf("DeletePerson: %w", person.ErrNilPerson)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roster == nil {
		return ErrNoRoster
	}

	before := len(m.edges)
	m.edges = slices.DeleteFunc(m.edges, func(e Edge) bool { return e.Involves(p) })
	touched := 0
	for _, g := range m.groups {
		if g.remove(p) {
			touched++
		}
	}
	m.log.Debug("Person deleted",
		zap.String("person", p.ID.String()),
		zap.Int("edges_dropped", before-len(m.edges)),
		zap.Int("groups_touched", touched),
	)

	if m.roster.Contains(p) {
		if err := m.roster.Remove(p.ID); err != nil {
			return fmt.Errorf("DeletePerson: %w", err)
		}
	}

	return nil
}

// AddEdge declares src -[kind]-> tgt. Duplicates are accepted.
//
// Errors:
//   - person.ErrNilPerson, ErrSelfEdge, relkind.ErrEmptyName,
//     ErrParentalKind, ErrUnknownKind.
func (m *Manager) AddEdge(src, tgt *person.Person, kind relkind.Kind) error {
	const method = "AddEdge"
	if src == nil || tgt == nil {
		return fmt.Errorf("%s: %w", method, person.ErrNilPerson)
	}
	if src == tgt {
		return fmt.Errorf("%s: %w", method, ErrSelfEdge)
	}
	if kind.Name == "" {
		return fmt.Errorf("%s: %w", method, relkind.ErrEmptyName)
	}
	if m.kinds != nil {
		registered, ok := m.kinds.Lookup(kind.Name)
		if !ok {
			return fmt.Errorf("%s(%s): %w", method, kind.Name, ErrUnknownKind)
		}
		// Flags come from the registry, not the caller.
		kind = registered
	}
	if kind.Parental {
		return fmt.Errorf("%s(%s): %w", method, kind.Name, ErrParentalKind)
	}

	m.mu.Lock()
	m.edges = append(m.edges, Edge{Source: src, Target: tgt, Kind: kind})
	m.mu.Unlock()

	return nil
}

// RemoveEdge drops every declared copy of src -[kind]-> tgt.
func (m *Manager) RemoveEdge(src, tgt *person.Person, kind relkind.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.edges)
	m.edges = slices.DeleteFunc(m.edges, func(e Edge) bool { return e.Matches(src, tgt, kind) })
	if len(m.edges) == before {
		return fmt.Errorf("RemoveEdge(%s): %w", kind.Name, ErrEdgeNotFound)
	}

	return nil
}

// Edges returns the declared edges in declaration order.
func (m *Manager) Edges() []Edge {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.edges)
}

// EdgesOf returns the declared edges with p as either endpoint.
func (m *Manager) EdgesOf(p *person.Person) []Edge {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Edge
	for _, e := range m.edges {
		if e.Involves(p) {
			out = append(out, e)
		}
	}

	return out
}

// NewGroup creates an empty group and returns it.
func (m *Manager) NewGroup() *Group {
	g := newGroup()
	m.mu.Lock()
	m.groups = append(m.groups, g)
	m.mu.Unlock()

	return g
}

// RemoveGroup drops g.
func (m *Manager) RemoveGroup(g *Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.groups, g)
	if i < 0 {
		return ErrGroupNotFound
	}
	m.groups = slices.Delete(m.groups, i, i+1)

	return nil
}

// AddParent fills the next parent slot of g with p.
func (m *Manager) AddParent(g *Group, p *person.Person) error {
	return m.withGroup("AddParent", g, func() error { return g.AppendParent(p) })
}

// AddChild appends p to the children of g.
func (m *Manager) AddChild(g *Group, p *person.Person) error {
	return m.withGroup("AddChild", g, func() error { return g.AppendChild(p) })
}

// RemoveParent takes p out of the parents of g.
func (m *Manager) RemoveParent(g *Group, p *person.Person) error {
	return m.withGroup("RemoveParent", g, func() error {
		i := slices.Index(g.parents, p)
		if i < 0 {
			return ErrNotMember
		}
		g.parents = slices.Delete(g.parents, i, i+1)
		return nil
	})
}

// RemoveChild takes p out of the children of g.
func (m *Manager) RemoveChild(g *Group, p *person.Person) error {
	return m.withGroup("RemoveChild", g, func() error {
		i := slices.Index(g.children, p)
		if i < 0 {
			return ErrNotMember
		}
		g.children = slices.Delete(g.children, i, i+1)
		return nil
	})
}

func (m *Manager) withGroup(method string, g *Group, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g == nil || !slices.Contains(m.groups, g) {
		return fmt.Errorf("%s: %w", method, ErrGroupNotFound)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	return nil
}

// Groups returns the declared groups in creation order.
func (m *Manager) Groups() []*Group {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.groups)
}

// GroupsOf returns the groups p belongs to in any role.
func (m *Manager) GroupsOf(p *person.Person) []*Group {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Group
	for _, g := range m.groups {
		if g.Has(p) {
			out = append(out, g)
		}
	}

	return out
}
