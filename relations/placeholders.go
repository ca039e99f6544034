// SPDX-License-Identifier: MIT

package relations

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/person"
)

// Available returns roster members of the given kinds in roster order.
// With no kinds it returns Active and Hidden persons.
func (m *Manager) Available(kinds ...person.Kind) []*person.Person {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roster == nil {
		return nil
	}
	if len(kinds) == 0 {
		kinds = []person.Kind{person.KindActive, person.KindHidden}
	}

	var out []*person.Person
	for _, p := range m.roster.All() {
		if slices.Contains(kinds, p.Kind) {
			out = append(out, p)
		}
	}

	return out
}

// Placeholders returns the currently offered placeholder persons.
// They are not roster members until consumed.
func (m *Manager) Placeholders() []*person.Person {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.placeholders)
}

// ConsumePlaceholder turns an offered placeholder into a Hidden roster member
// and tops the offered set back up.
func (m *Manager) ConsumePlaceholder(p *person.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roster == nil {
		return ErrNoRoster
	}

	i := slices.Index(m.placeholders, p)
	if i < 0 {
		return fmt.Errorf("ConsumePlaceholder: %w", ErrNotPlaceholder)
	}
	p.Kind = person.KindHidden
	if err := m.roster.Add(p); err != nil {
		p.Kind = person.KindPlaceholder
		return fmt.Errorf("ConsumePlaceholder: %w", err)
	}
	m.placeholders = slices.Delete(m.placeholders, i, i+1)
	m.refillLocked()
	m.log.Debug("Placeholder consumed", zap.String("person", p.ID.String()))

	return nil
}

// refillLocked spawns placeholders until the offered set is full. Caller holds mu.
func (m *Manager) refillLocked() {
	for len(m.placeholders) < m.placeholderCount {
		g := person.GenderFemale
		if len(m.placeholders)%2 == 1 {
			g = person.GenderMale
		}
		m.placeholders = append(m.placeholders, m.roster.Spawn(person.KindPlaceholder, g, m.placeholderSpecies))
	}
}
