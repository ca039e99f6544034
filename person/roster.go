// SPDX-License-Identifier: MIT

package person

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// firstNumericID is the first identifier a fresh Roster hands out.
const firstNumericID = 1000

// Roster owns Person instances in insertion order and is the numeric
// identifier source for both persons and the compatibility pool.
//
// Concurrency: all methods are safe for concurrent use; the compiler still
// requires exclusive access for the duration of one build.
type Roster struct {
	mu     sync.RWMutex
	order  []uuid.UUID
	byID   map[uuid.UUID]*Person
	nextID int
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{
		byID:   make(map[uuid.UUID]*Person),
		nextID: firstNumericID,
	}
}

// NextNumericID reserves and returns a fresh numeric identifier.
func (r *Roster) NextNumericID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++

	return id
}

// Spawn creates a person of the given kind that the roster will own once
// registered with Add. The person gets a fresh identity and numeric ID, zero
// ages and no name.
func (r *Roster) Spawn(kind Kind, gender Gender, species *Species) *Person {
	return &Person{
		ID:        uuid.New(),
		Kind:      kind,
		Gender:    gender,
		Species:   species,
		NumericID: r.NextNumericID(),
	}
}

// Add registers p. A zero NumericID is replaced by a fresh one.
//
// Errors:
//   - ErrNilPerson, ErrDuplicate.
func (r *Roster) Add(p *Person) error {
	if p == nil {
		return ErrNilPerson
	}
	if p.NumericID == 0 {
		p.NumericID = r.NextNumericID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return fmt.Errorf("Add(%s): %w", p.Label(), ErrDuplicate)
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)

	return nil
}

// Remove unregisters the person with the given ID.
//
// Errors:
//   - ErrNotFound.
func (r *Roster) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("Remove(%s): %w", id, ErrNotFound)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// Replace swaps old for repl at the same roster position.
//
// Errors:
//   - ErrNilPerson, ErrNotFound (old missing), ErrDuplicate (repl already present).
func (r *Roster) Replace(old, repl *Person) error {
	if old == nil || repl == nil {
		return ErrNilPerson
	}
	if repl.NumericID == 0 {
		repl.NumericID = r.NextNumericID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[old.ID]; !ok {
		return fmt.Errorf("Replace(%s): %w", old.Label(), ErrNotFound)
	}
	if _, ok := r.byID[repl.ID]; ok && repl.ID != old.ID {
		return fmt.Errorf("Replace(%s): %w", repl.Label(), ErrDuplicate)
	}
	delete(r.byID, old.ID)
	r.byID[repl.ID] = repl
	for i, oid := range r.order {
		if oid == old.ID {
			r.order[i] = repl.ID
			break
		}
	}

	return nil
}

// Get returns the person with the given ID.
func (r *Roster) Get(id uuid.UUID) (*Person, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]

	return p, ok
}

// Contains reports whether p is registered.
func (r *Roster) Contains(p *Person) bool {
	if p == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	held, ok := r.byID[p.ID]

	return ok && held == p
}

// All returns the registered persons in insertion order.
func (r *Roster) All() []*Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Person, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}

	return out
}

// OfKind returns the registered persons whose Kind is one of kinds, in insertion order.
func (r *Roster) OfKind(kinds ...Kind) []*Person {
	var out []*Person
	for _, p := range r.All() {
		for _, k := range kinds {
			if p.Kind == k {
				out = append(out, p)
				break
			}
		}
	}

	return out
}

// Len returns the number of registered persons.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
