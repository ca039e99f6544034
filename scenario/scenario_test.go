// SPDX-License-Identifier: MIT

package scenario_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/config"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/scenario"
	"github.com/katalvlaran/kinship/session"
)

const family = `
species:
  - {name: elf, life_expectancy: 450}
world:
  entities: [world:smith, world:jones, world:brown]
  relations:
    - {from: world:smith, kind: rival, to: world:jones}
    - {from: world:jones, kind: friend, to: world:brown}
people:
  - {key: anna, name: Anna, gender: female, species: human, age: 8}
  - {key: ben, name: Ben, gender: male, species: human, age: 5, chronological_age: 6}
  - {key: smith, kind: hidden, gender: male, species: human, age: 50, world_ref: world:smith}
  - {key: lia, kind: active, gender: female, species: elf, age: 120}
edges:
  - {from: anna, kind: friend, to: smith}
  - {from: anna, kind: friend, to: smith}
groups:
  - {parents: [], children: [anna, ben]}
`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(config.Default())
	require.NoError(t, err)

	return s
}

func TestDecodeAndPopulate(t *testing.T) {
	sc, err := scenario.Decode(strings.NewReader(family))
	require.NoError(t, err)

	s := newSession(t)
	people, err := sc.Populate(s)
	require.NoError(t, err)
	require.Len(t, people, 4)

	assert.Equal(t, "smith", people["smith"].Name, "key doubles as name")
	assert.Equal(t, person.KindHidden, people["smith"].Kind)
	assert.Equal(t, 6, people["ben"].ChronologicalAge())
	assert.Equal(t, 450.0, people["lia"].Species.LifeExpectancy)
	assert.Len(t, s.Manager.Edges(), 2)
	assert.Len(t, s.Manager.Groups(), 1)

	rep, err := s.Apply()
	require.NoError(t, err)
	assert.Empty(t, rep.Skipped)
	assert.Len(t, rep.Registered, 2)

	annaNode, _ := s.Host.Resolve(people["anna"])
	assert.True(t, s.Host.HasDirectRelation(annaNode, "friend", "world:smith"))
	assert.False(t, s.Host.HasDirectRelation("world:smith", "rival", "world:jones"),
		"in-scope world nodes are rebuilt from declarations")
	assert.True(t, s.Host.HasDirectRelation("world:jones", "friend", "world:brown"),
		"out-of-scope relations are left alone")
	assert.Len(t, s.Host.DirectRelations(annaNode), 3, "one friend edge, two parent edges")
	assert.Equal(t, 1, rep.Removed)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(family), 0o600))
	sc, err := scenario.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, sc.People, 4)

	_, err = scenario.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":   "peeple: []",
		"bad kind":        "people: [{key: a, kind: ghost}]",
		"bad gender":      "people: [{key: a, gender: x}]",
		"negative age":    "people: [{key: a, age: -1}]",
		"chrono below":    "people: [{key: a, age: 10, chronological_age: 5}]",
		"duplicate key":   "people: [{key: a}, {key: a}]",
		"three parents":   "groups: [{parents: [a, b, c], children: []}]",
		"missing edge to": "edges: [{from: a, kind: friend}]",
		"bad species":     "species: [{name: x, life_expectancy: 0}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	sc, err := scenario.Decode(strings.NewReader(""))
	require.NoError(t, err, "an empty document is an empty scenario")
	assert.Empty(t, sc.People)
}

func TestPopulate_Errors(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want error
	}{
		"unknown person":  {"people: [{key: a}]\nedges: [{from: a, kind: friend, to: b}]", scenario.ErrUnknownPerson},
		"unknown species": {"people: [{key: a, species: dragon}]", scenario.ErrUnknownSpecies},
		"unknown kind":    {"people: [{key: a}, {key: b}]\nedges: [{from: a, kind: nemesis, to: b}]", scenario.ErrUnknownKind},
		"group member":    {"groups: [{children: [ghost]}]", scenario.ErrUnknownPerson},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sc, err := scenario.Decode(strings.NewReader(tt.doc))
			require.NoError(t, err)
			_, err = sc.Populate(newSession(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
