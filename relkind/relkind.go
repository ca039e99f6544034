// SPDX-License-Identifier: MIT

// Package relkind holds relationship-kind descriptors and a small registry.
// Kinds are compared by Name; the registry is the only place a Name is bound
// to its flags.
package relkind

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEmptyName indicates a Kind without a name.
	ErrEmptyName = errors.New("relkind: empty kind name")

	// ErrAlreadyRegistered indicates a second registration of the same name.
	ErrAlreadyRegistered = errors.New("relkind: kind already registered")

	// ErrParentalConflict indicates a second parental kind.
	ErrParentalConflict = errors.New("relkind: parental kind already registered")
)

// Kind describes one relationship kind.
type Kind struct {
	Name string

	// NeedsCompatibilityOptimization asks the compiler to run the identifier
	// swap heuristic on the target of every newly created edge of this kind.
	NeedsCompatibilityOptimization bool

	// Parental marks the Child→Parent kind that parent/child groups compile into.
	Parental bool
}

// Equal reports whether k and o name the same kind.
func (k Kind) Equal(o Kind) bool { return k.Name == o.Name }

func (k Kind) String() string { return k.Name }

// Built-in kinds.
var (
	Parent  = Kind{Name: "parent", Parental: true}
	Spouse  = Kind{Name: "spouse", NeedsCompatibilityOptimization: true}
	Fiance  = Kind{Name: "fiance", NeedsCompatibilityOptimization: true}
	Lover   = Kind{Name: "lover", NeedsCompatibilityOptimization: true}
	ExLover = Kind{Name: "ex_lover"}
	Friend  = Kind{Name: "friend"}
	Rival   = Kind{Name: "rival"}
	Bond    = Kind{Name: "bond"}
)

// Registry maps names to kinds. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Kind
	parental string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Kind)}
}

// DefaultRegistry returns a registry holding the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range []Kind{Parent, Spouse, Fiance, Lover, ExLover, Friend, Rival, Bond} {
		// Built-ins are distinct and only Parent is parental.
		_ = r.Register(k)
	}

	return r
}

// Register adds k. At most one parental kind may be registered.
func (r *Registry) Register(k Kind) error {
	if k.Name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[k.Name]; ok {
		return fmt.Errorf("Register(%s): %w", k.Name, ErrAlreadyRegistered)
	}
	if k.Parental {
		if r.parental != "" {
			return fmt.Errorf("Register(%s): %w", k.Name, ErrParentalConflict)
		}
		r.parental = k.Name
	}
	r.byName[k.Name] = k

	return nil
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byName[name]

	return k, ok
}

// Parent returns the registered parental kind, or the built-in Parent when none is registered.
func (r *Registry) Parent() Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.parental == "" {
		return Parent
	}

	return r.byName[r.parental]
}

// All returns every registered kind sorted by name.
func (r *Registry) All() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.byName))
	for _, k := range r.byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
