// SPDX-License-Identifier: MIT

package person_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/person"
)

var human = &person.Species{Name: "human", LifeExpectancy: 80}

func TestNew_AgeInvariant(t *testing.T) {
	_, err := person.New("x", person.KindActive, person.GenderMale, human, 10, 9)
	assert.ErrorIs(t, err, person.ErrInvalidAges)

	_, err = person.New("x", person.KindActive, person.GenderMale, human, -1, 3)
	assert.ErrorIs(t, err, person.ErrInvalidAges)

	p, err := person.New("Anna", person.KindActive, person.GenderFemale, human, 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 8, p.BiologicalAge())
	assert.Equal(t, 10, p.ChronologicalAge())
	assert.Equal(t, "Anna", p.Label())
}

func TestGender_Opposite(t *testing.T) {
	assert.Equal(t, person.GenderFemale, person.GenderMale.Opposite())
	assert.Equal(t, person.GenderMale, person.GenderFemale.Opposite())
	assert.NotEqual(t, person.GenderNone, person.GenderNone.Opposite())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    person.Kind
		wantErr bool
	}{
		{"active", person.KindActive, false},
		{"hidden", person.KindHidden, false},
		{"placeholder", person.KindPlaceholder, false},
		{"ghost", 0, true},
	}
	for _, tt := range tests {
		got, err := person.ParseKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}

	g, err := person.ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, person.GenderFemale, g)
	_, err = person.ParseGender("x")
	assert.Error(t, err)
}

func TestLifeExpectancyFallback(t *testing.T) {
	var nilPerson *person.Person
	assert.Equal(t, 70.0, nilPerson.LifeExpectancy(70))

	p := &person.Person{}
	assert.Equal(t, 70.0, p.LifeExpectancy(70))

	p.Species = human
	assert.Equal(t, 80.0, p.LifeExpectancy(70))
}

func TestRoster_Lifecycle(t *testing.T) {
	r := person.NewRoster()
	a, _ := person.New("A", person.KindActive, person.GenderMale, human, 20, 20)
	b, _ := person.New("B", person.KindHidden, person.GenderFemale, human, 30, 30)

	require.NoError(t, r.Add(a))
	require.NoError(t, r.Add(b))
	assert.ErrorIs(t, r.Add(a), person.ErrDuplicate)
	assert.ErrorIs(t, r.Add(nil), person.ErrNilPerson)
	assert.NotZero(t, a.NumericID)
	assert.NotEqual(t, a.NumericID, b.NumericID)

	assert.Equal(t, []*person.Person{a, b}, r.All())
	assert.Equal(t, []*person.Person{b}, r.OfKind(person.KindHidden))
	assert.True(t, r.Contains(a))

	c, _ := person.New("C", person.KindActive, person.GenderMale, human, 5, 5)
	require.NoError(t, r.Replace(a, c))
	assert.Equal(t, []*person.Person{c, b}, r.All())
	assert.False(t, r.Contains(a))
	assert.ErrorIs(t, r.Replace(a, c), person.ErrNotFound)

	require.NoError(t, r.Remove(c.ID))
	assert.ErrorIs(t, r.Remove(c.ID), person.ErrNotFound)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_Spawn(t *testing.T) {
	r := person.NewRoster()
	p := r.Spawn(person.KindHidden, person.GenderFemale, human)
	assert.Equal(t, person.KindHidden, p.Kind)
	assert.Equal(t, person.GenderFemale, p.Gender)
	assert.NotZero(t, p.NumericID)
	assert.False(t, r.Contains(p), "spawned persons are not registered yet")

	q := r.Spawn(person.KindHidden, person.GenderMale, human)
	assert.Equal(t, p.NumericID+1, q.NumericID)
}
