// SPDX-License-Identifier: MIT

package relkind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/relkind"
)

func TestDefaultRegistry(t *testing.T) {
	r := relkind.DefaultRegistry()

	k, ok := r.Lookup("spouse")
	require.True(t, ok)
	assert.True(t, k.NeedsCompatibilityOptimization)

	k, ok = r.Lookup("friend")
	require.True(t, ok)
	assert.False(t, k.NeedsCompatibilityOptimization)

	_, ok = r.Lookup("nemesis")
	assert.False(t, ok)

	assert.True(t, r.Parent().Equal(relkind.Parent))
	assert.Len(t, r.All(), 8)
	assert.Equal(t, "bond", r.All()[0].Name)
}

func TestRegistry_Register(t *testing.T) {
	r := relkind.NewRegistry()
	assert.ErrorIs(t, r.Register(relkind.Kind{}), relkind.ErrEmptyName)

	require.NoError(t, r.Register(relkind.Friend))
	assert.ErrorIs(t, r.Register(relkind.Friend), relkind.ErrAlreadyRegistered)

	// No parental kind registered yet: the built-in one is reported.
	assert.Equal(t, "parent", r.Parent().Name)

	custom := relkind.Kind{Name: "sire", Parental: true}
	require.NoError(t, r.Register(custom))
	assert.Equal(t, "sire", r.Parent().Name)
	assert.ErrorIs(t, r.Register(relkind.Kind{Name: "dam", Parental: true}), relkind.ErrParentalConflict)
}

func TestKind_Equal(t *testing.T) {
	a := relkind.Kind{Name: "lover", NeedsCompatibilityOptimization: true}
	b := relkind.Kind{Name: "lover"}
	assert.True(t, a.Equal(b), "equality is by name only")
	assert.False(t, a.Equal(relkind.Friend))
}
