// SPDX-License-Identifier: MIT

// Package scenario loads a YAML description of a roster, a pre-existing world
// and declared relationships into a session.
//
// Example:
//
//	species:
//	  - {name: elf, life_expectancy: 450}
//	world:
//	  entities: [world:smith]
//	  relations:
//	    - {from: world:smith, kind: rival, to: world:jones}
//	people:
//	  - {key: anna, name: Anna, kind: active, gender: female, species: human, age: 8}
//	  - {key: smith, name: Smith, kind: hidden, gender: male, age: 50, world_ref: world:smith}
//	edges:
//	  - {from: anna, kind: friend, to: smith}
//	groups:
//	  - {parents: [], children: [anna]}
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relations"
	"github.com/katalvlaran/kinship/session"
)

// Sentinel errors.
var (
	ErrInvalid        = errors.New("scenario: invalid")
	ErrUnknownPerson  = errors.New("scenario: unknown person key")
	ErrUnknownSpecies = errors.New("scenario: unknown species")
	ErrUnknownKind    = errors.New("scenario: unknown relationship kind")
)

// Scenario is the decoded document.
type Scenario struct {
	Species []SpeciesDoc `yaml:"species" validate:"dive"`
	World   WorldDoc     `yaml:"world"`
	People  []PersonDoc  `yaml:"people" validate:"dive"`
	Edges   []EdgeDoc    `yaml:"edges" validate:"dive"`
	Groups  []GroupDoc   `yaml:"groups" validate:"dive"`
}

// SpeciesDoc adds or overrides a species.
type SpeciesDoc struct {
	Name           string  `yaml:"name" validate:"required"`
	LifeExpectancy float64 `yaml:"life_expectancy" validate:"gt=0"`
}

// WorldDoc lists pre-existing world nodes and relations between them.
type WorldDoc struct {
	Entities  []string      `yaml:"entities" validate:"dive,required"`
	Relations []RelationDoc `yaml:"relations" validate:"dive"`
}

// RelationDoc is a raw substrate relation between node keys.
type RelationDoc struct {
	From string `yaml:"from" validate:"required"`
	Kind string `yaml:"kind" validate:"required"`
	To   string `yaml:"to" validate:"required,nefield=From"`
}

// PersonDoc declares one roster person under a document-local key.
type PersonDoc struct {
	Key              string `yaml:"key" validate:"required"`
	Name             string `yaml:"name"`
	Kind             string `yaml:"kind" validate:"omitempty,oneof=active hidden placeholder"`
	Gender           string `yaml:"gender" validate:"omitempty,oneof=male female none"`
	Species          string `yaml:"species"`
	Age              int    `yaml:"age" validate:"gte=0"`
	ChronologicalAge *int   `yaml:"chronological_age" validate:"omitempty,gtefield=Age"`
	WorldRef         string `yaml:"world_ref"`
}

// EdgeDoc declares a relationship between person keys.
type EdgeDoc struct {
	From string `yaml:"from" validate:"required"`
	Kind string `yaml:"kind" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// GroupDoc declares a parent/child group by person keys.
type GroupDoc struct {
	Parents  []string `yaml:"parents" validate:"max=2,dive,required"`
	Children []string `yaml:"children" validate:"dive,required"`
}

var validate = validator.New()

// Decode reads and validates a scenario.
func Decode(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// LoadFile decodes the scenario stored at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Validate checks field constraints and that person keys are unique.
func (sc *Scenario) Validate() error {
	if err := validate.Struct(sc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	keys := make(map[string]struct{}, len(sc.People))
	for _, p := range sc.People {
		if _, dup := keys[p.Key]; dup {
			return fmt.Errorf("%w: duplicate person key %q", ErrInvalid, p.Key)
		}
		keys[p.Key] = struct{}{}
	}

	return nil
}

// Populate loads the scenario into s and returns the created persons by key.
//
// Order: species, world entities and relations, people, edges, groups.
// The first failure aborts; s may then hold part of the scenario.
func (sc *Scenario) Populate(s *session.Session) (map[string]*person.Person, error) {
	for _, sp := range sc.Species {
		s.Species[sp.Name] = &person.Species{Name: sp.Name, LifeExpectancy: sp.LifeExpectancy}
	}

	for _, ref := range sc.World.Entities {
		if err := s.Host.AddWorldEntity(ref); err != nil {
			return nil, fmt.Errorf("world entity %q: %w", ref, err)
		}
	}
	for _, rel := range sc.World.Relations {
		if err := s.Host.AddDirectRelation(rel.From, rel.Kind, rel.To); err != nil {
			return nil, fmt.Errorf("world relation: %w", err)
		}
	}

	byKey := make(map[string]*person.Person, len(sc.People))
	for _, pd := range sc.People {
		p, err := pd.build(s.Species)
		if err != nil {
			return nil, fmt.Errorf("person %q: %w", pd.Key, err)
		}
		if err = s.Manager.AddPerson(p); err != nil {
			return nil, fmt.Errorf("person %q: %w", pd.Key, err)
		}
		byKey[pd.Key] = p
	}

	lookup := func(key string) (*person.Person, error) {
		p, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", key, ErrUnknownPerson)
		}
		return p, nil
	}

	for i, ed := range sc.Edges {
		src, err := lookup(ed.From)
		if err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
		tgt, err := lookup(ed.To)
		if err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
		kind, ok := s.Kinds.Lookup(ed.Kind)
		if !ok {
			return nil, fmt.Errorf("edge #%d %q: %w", i, ed.Kind, ErrUnknownKind)
		}
		if err = s.Manager.AddEdge(src, tgt, kind); err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
	}

	for i, gd := range sc.Groups {
		if err := populateGroup(s.Manager, gd, lookup); err != nil {
			return nil, fmt.Errorf("group #%d: %w", i, err)
		}
	}

	return byKey, nil
}

func populateGroup(m *relations.Manager, gd GroupDoc, lookup func(string) (*person.Person, error)) error {
	g := m.NewGroup()
	for _, key := range gd.Parents {
		p, err := lookup(key)
		if err != nil {
			return err
		}
		if err = m.AddParent(g, p); err != nil {
			return err
		}
	}
	for _, key := range gd.Children {
		p, err := lookup(key)
		if err != nil {
			return err
		}
		if err = m.AddChild(g, p); err != nil {
			return err
		}
	}

	return nil
}

// build turns the document entry into a Person.
func (pd PersonDoc) build(species map[string]*person.Species) (*person.Person, error) {
	kind := person.KindActive
	if pd.Kind != "" {
		k, err := person.ParseKind(pd.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	gender, err := person.ParseGender(pd.Gender)
	if err != nil {
		return nil, err
	}

	var sp *person.Species
	if pd.Species != "" {
		var ok bool
		if sp, ok = species[pd.Species]; !ok {
			return nil, fmt.Errorf("%q: %w", pd.Species, ErrUnknownSpecies)
		}
	}

	chrono := pd.Age
	if pd.ChronologicalAge != nil {
		chrono = *pd.ChronologicalAge
	}
	name := pd.Name
	if name == "" {
		name = pd.Key
	}

	p, err := person.New(name, kind, gender, sp, pd.Age, chrono)
	if err != nil {
		return nil, err
	}
	p.WorldRef = pd.WorldRef

	return p, nil
}
