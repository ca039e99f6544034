// SPDX-License-Identifier: MIT

// Package person defines the roster entities the relationship compiler works on:
// Person, its Kind and Gender, the Species descriptor, and an in-memory Roster
// that owns Person instances and hands out numeric identifiers.
package person

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for person and roster operations.
var (
	// ErrNilPerson indicates a nil *Person was passed where an entity is required.
	ErrNilPerson = errors.New("person: nil person")

	// ErrInvalidAges indicates chronological age < biological age, or a negative age.
	ErrInvalidAges = errors.New("person: invalid ages")

	// ErrDuplicate indicates the roster already holds a person with this ID.
	ErrDuplicate = errors.New("person: already in roster")

	// ErrNotFound indicates the roster holds no person with this ID.
	ErrNotFound = errors.New("person: not in roster")
)

// Kind distinguishes editable roster members from hidden proxies and placeholders.
type Kind int

const (
	// KindActive is an editable, user-visible person.
	KindActive Kind = iota
	// KindHidden is a world-only proxy that exists to satisfy a relationship.
	KindHidden
	// KindPlaceholder is a disposable stand-in offered for inline "create new" flows.
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindActive:
		return "active"
	case KindHidden:
		return "hidden"
	case KindPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "active", "hidden" or "placeholder" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "active":
		return KindActive, nil
	case "hidden":
		return KindHidden, nil
	case "placeholder":
		return KindPlaceholder, nil
	}
	return 0, fmt.Errorf("person: unknown kind %q", s)
}

// Gender of a person.
type Gender int

const (
	GenderNone Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "none"
	}
}

// Opposite returns the other binary gender. GenderNone maps to GenderFemale so
// that any pairing with it still ends up with two distinct genders.
func (g Gender) Opposite() Gender {
	if g == GenderFemale {
		return GenderMale
	}
	return GenderFemale
}

// ParseGender maps "male", "female" or "none" to a Gender.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "none", "":
		return GenderNone, nil
	}
	return 0, fmt.Errorf("person: unknown gender %q", s)
}

// Species exposes the life expectancy age constraints are scaled by.
type Species struct {
	Name           string
	LifeExpectancy float64
}

// Person is one roster entity.
type Person struct {
	ID     uuid.UUID
	Name   string
	Kind   Kind
	Gender Gender

	// NumericID is the identifier the host's compatibility offset is computed from.
	NumericID int

	Species *Species

	// WorldRef names the simulation node of the pre-existing world entity a
	// Hidden proxy stands for. Empty for synthesized persons.
	WorldRef string

	biologicalAge    int
	chronologicalAge int
}

// New returns a Person with a fresh identity.
//
// Errors:
//   - ErrInvalidAges when bio < 0 or chrono < bio.
func New(name string, kind Kind, gender Gender, species *Species, bio, chrono int) (*Person, error) {
	p := &Person{
		ID:      uuid.New(),
		Name:    name,
		Kind:    kind,
		Gender:  gender,
		Species: species,
	}
	if err := p.SetAges(bio, chrono); err != nil {
		return nil, err
	}

	return p, nil
}

// BiologicalAge in years.
func (p *Person) BiologicalAge() int { return p.biologicalAge }

// ChronologicalAge in years; never below BiologicalAge.
func (p *Person) ChronologicalAge() int { return p.chronologicalAge }

// SetAges assigns both ages, keeping chronological ≥ biological ≥ 0.
func (p *Person) SetAges(bio, chrono int) error {
	if bio < 0 || chrono < bio {
		return fmt.Errorf("SetAges(%d, %d): %w", bio, chrono, ErrInvalidAges)
	}
	p.biologicalAge, p.chronologicalAge = bio, chrono

	return nil
}

// LifeExpectancy returns the species life expectancy, or fallback when the
// species is unknown or carries a non-positive value.
func (p *Person) LifeExpectancy(fallback float64) float64 {
	if p == nil || p.Species == nil || p.Species.LifeExpectancy <= 0 {
		return fallback
	}
	return p.Species.LifeExpectancy
}

// Label is a short human-readable tag for logs: the name, or the ID prefix when unnamed.
func (p *Person) Label() string {
	if p == nil {
		return "<nil>"
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID.String()[:8]
}
