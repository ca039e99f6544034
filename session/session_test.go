// SPDX-License-Identifier: MIT

package session_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/kinship/config"
	"github.com/katalvlaran/kinship/lineage"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/session"
)

func newPerson(t *testing.T, s *session.Session, name string, g person.Gender, age int) *person.Person {
	t.Helper()
	p, err := person.New(name, person.KindActive, g, s.Species["human"], age, age)
	require.NoError(t, err)
	require.NoError(t, s.Manager.AddPerson(p))

	return p
}

func TestApply_RegistersSynthesizedParents(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	anna := newPerson(t, s, "Anna", person.GenderFemale, 8)
	ben := newPerson(t, s, "Ben", person.GenderMale, 5)
	g := s.Manager.NewGroup()
	require.NoError(t, s.Manager.AddChild(g, anna))
	require.NoError(t, s.Manager.AddChild(g, ben))

	rep, err := s.Apply()
	require.NoError(t, err)
	require.Len(t, rep.Registered, 2)
	assert.Equal(t, rep.Hidden, rep.Registered)
	for _, p := range rep.Registered {
		assert.True(t, s.Roster.Contains(p))
	}
	assert.NoError(t, rep.Ancestry)
	require.Len(t, rep.Generations, 2)
	assert.Len(t, rep.Generations[0], 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Builds))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.Metrics.ParentsSynthesized))

	again, err := s.Apply()
	require.NoError(t, err)
	assert.Empty(t, again.Registered)
	assert.Zero(t, again.Applied)
	assert.Len(t, s.Roster.OfKind(person.KindHidden), 2)
}

func TestDeletePerson_DropsNodeAndRebuilds(t *testing.T) {
	s, err := session.New(config.Default())
	require.NoError(t, err)
	anna := newPerson(t, s, "Anna", person.GenderFemale, 8)
	ben := newPerson(t, s, "Ben", person.GenderMale, 5)
	cara := newPerson(t, s, "Cara", person.GenderFemale, 9)
	friend, _ := s.Kinds.Lookup("friend")
	require.NoError(t, s.Manager.AddEdge(anna, ben, friend))
	require.NoError(t, s.Manager.AddEdge(cara, ben, friend))

	_, err = s.Apply()
	require.NoError(t, err)
	annaNode, _ := s.Host.Resolve(anna)
	require.True(t, s.Host.Graph().HasVertex(annaNode))

	require.NoError(t, s.DeletePerson(anna))
	assert.False(t, s.Roster.Contains(anna))
	assert.False(t, s.Host.Graph().HasVertex(annaNode))
	assert.Len(t, s.Manager.Edges(), 1)

	rep, err := s.Apply()
	require.NoError(t, err)
	assert.Zero(t, rep.Applied)
	assert.Equal(t, 1, s.Host.Graph().EdgeCount(), "only Cara's friendship remains")

	assert.Error(t, s.DeletePerson(nil))
}

func TestApply_ReportsAncestryCycle(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := session.New(config.Default(), session.WithLogger(zap.New(core)))
	require.NoError(t, err)
	a := newPerson(t, s, "A", person.GenderFemale, 40)
	b := newPerson(t, s, "B", person.GenderMale, 40)

	g1 := s.Manager.NewGroup()
	require.NoError(t, s.Manager.AddParent(g1, a))
	require.NoError(t, s.Manager.AddChild(g1, b))
	g2 := s.Manager.NewGroup()
	require.NoError(t, s.Manager.AddParent(g2, b))
	require.NoError(t, s.Manager.AddChild(g2, a))

	rep, err := s.Apply()
	require.NoError(t, err)
	assert.ErrorIs(t, rep.Ancestry, lineage.ErrCycleDetected)
	assert.Equal(t, 1, logs.FilterMessage("Ancestry cycle in applied relations").Len())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultLifeExpectancy = -1
	_, err := session.New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	s, err := session.New(cfg)
	require.NoError(t, err)
	assert.Nil(t, s.Metrics)

	_, err = s.Apply()
	assert.NoError(t, err)
}

func TestNew_PlaceholdersUseConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PlaceholderCount = 4
	s, err := session.New(cfg)
	require.NoError(t, err)

	ph := s.Manager.Placeholders()
	require.Len(t, ph, 4)
	assert.Same(t, s.Species["human"], ph[0].Species)
}
