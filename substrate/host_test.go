// SPDX-License-Identifier: MIT

package substrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/core"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/substrate"
)

func mk(t *testing.T, kind person.Kind) *person.Person {
	t.Helper()
	p, err := person.New("x", kind, person.GenderMale, nil, 30, 30)
	require.NoError(t, err)

	return p
}

func TestResolve(t *testing.T) {
	h := substrate.NewHost()
	active := mk(t, person.KindActive)
	hidden := mk(t, person.KindHidden)
	proxy := mk(t, person.KindHidden)
	proxy.WorldRef = "world:smith"
	holder := mk(t, person.KindPlaceholder)

	node, ok := h.Resolve(active)
	require.True(t, ok)
	assert.Equal(t, "pawn:"+active.ID.String(), node)

	node, ok = h.Resolve(hidden)
	require.True(t, ok)
	assert.Equal(t, h.ProxyNode(hidden), node)

	_, ok = h.Resolve(proxy)
	assert.False(t, ok, "world node not registered yet")
	require.NoError(t, h.AddWorldEntity("world:smith"))
	node, ok = h.Resolve(proxy)
	require.True(t, ok)
	assert.Equal(t, "world:smith", node)
	assert.NotEqual(t, node, h.ProxyNode(proxy))

	_, ok = h.Resolve(holder)
	assert.False(t, ok)
	_, ok = h.Resolve(nil)
	assert.False(t, ok)

	assert.ErrorIs(t, h.AddWorldEntity(""), substrate.ErrEmptyWorldRef)
}

func TestRelations(t *testing.T) {
	g := core.NewGraph()
	h := substrate.NewHost(substrate.WithGraph(g))
	assert.Same(t, g, h.Graph())

	require.NoError(t, h.AddDirectRelation("a", "friend", "b"))
	require.NoError(t, h.AddDirectRelation("c", "rival", "a"))
	assert.ErrorIs(t, h.AddDirectRelation("a", "friend", "b"), core.ErrDuplicateEdge)
	assert.True(t, h.HasDirectRelation("a", "friend", "b"))
	assert.False(t, h.HasDirectRelation("b", "friend", "a"))

	rels := h.DirectRelations("a")
	require.Len(t, rels, 2)
	assert.Equal(t, core.Edge{ID: "e1", From: "a", To: "b", Kind: "friend"}, rels[0])
	assert.Nil(t, h.DirectRelations("nobody"))

	require.NoError(t, h.RemoveDirectRelation("a", "friend", "b"))
	assert.ErrorIs(t, h.RemoveDirectRelation("a", "friend", "b"), core.ErrEdgeNotFound)

	h.ClearAllRelations("a")
	h.ClearAllRelations("")
	assert.Zero(t, g.EdgeCount())
	assert.True(t, g.HasVertex("a"), "clearing keeps the node")
}

func TestRemovePerson(t *testing.T) {
	h := substrate.NewHost()
	anna := mk(t, person.KindActive)
	smith := mk(t, person.KindHidden)
	smith.WorldRef = "world:smith"
	require.NoError(t, h.AddWorldEntity("world:smith"))

	annaNode := h.ProxyNode(anna)
	require.NoError(t, h.AddDirectRelation(annaNode, "friend", "world:smith"))
	require.NoError(t, h.AddDirectRelation("world:smith", "rival", annaNode))

	require.NoError(t, h.RemovePerson(anna))
	assert.False(t, h.Graph().HasVertex(annaNode))
	assert.Zero(t, h.Graph().EdgeCount(), "relations in both directions go with the node")

	require.NoError(t, h.RemovePerson(smith), "no proxy node yet")
	assert.True(t, h.Graph().HasVertex("world:smith"), "world entities survive")
	require.NoError(t, h.RemovePerson(anna), "second removal is a no-op")
	require.NoError(t, h.RemovePerson(nil))
}

func TestCompatibilityOffset(t *testing.T) {
	h := substrate.NewHost()
	assert.Equal(t, compat.Offset(3, 4), h.CompatibilityOffset(3, 4))

	h = substrate.NewHost(substrate.WithOffset(func(a, b int) float64 { return float64(a + b) }))
	assert.Equal(t, 7.0, h.CompatibilityOffset(3, 4))

	assert.Panics(t, func() { substrate.WithOffset(nil) })
	assert.Panics(t, func() { substrate.WithGraph(nil) })
}
