// SPDX-License-Identifier: MIT

package lineage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/core"
	"github.com/katalvlaran/kinship/lineage"
)

const parent = "parent"

// family: kid → mum, kid → dad, mum → gran; plus an unrelated friend edge.
func family(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][3]string{
		{"kid", parent, "mum"},
		{"kid", parent, "dad"},
		{"mum", parent, "gran"},
		{"sis", parent, "mum"},
		{"kid", "friend", "pal"},
	} {
		_, err := g.AddEdge(e[0], e[2], e[1])
		require.NoError(t, err)
	}

	return g
}

func TestAncestors(t *testing.T) {
	g := family(t)
	got, err := lineage.Ancestors(g, "kid", parent)
	require.NoError(t, err)
	assert.Equal(t, []lineage.Relative{{"mum", 1}, {"dad", 1}, {"gran", 2}}, got)

	got, err = lineage.Ancestors(g, "kid", parent, lineage.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = lineage.Ancestors(g, "gran", parent)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescendants(t *testing.T) {
	g := family(t)
	got, err := lineage.Descendants(g, "gran", parent)
	require.NoError(t, err)
	assert.Equal(t, []lineage.Relative{{"mum", 1}, {"kid", 2}, {"sis", 2}}, got)
}

func TestWalk_Errors(t *testing.T) {
	g := family(t)
	_, err := lineage.Ancestors(nil, "kid", parent)
	assert.ErrorIs(t, err, lineage.ErrGraphNil)
	_, err = lineage.Ancestors(g, "kid", "")
	assert.ErrorIs(t, err, lineage.ErrEmptyKind)
	_, err = lineage.Ancestors(g, "nobody", parent)
	assert.ErrorIs(t, err, lineage.ErrNodeNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lineage.Descendants(g, "gran", parent, lineage.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	assert.Panics(t, func() { lineage.WithMaxDepth(-1) })
}

func TestGenerations(t *testing.T) {
	g := family(t)
	layers, err := lineage.Generations(g, parent)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"dad", "gran"},
		{"mum"},
		{"kid", "sis"},
	}, layers)

	empty, err := lineage.Generations(core.NewGraph(), parent)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerations_Cycle(t *testing.T) {
	g := family(t)
	_, err := g.AddEdge("gran", "kid", parent)
	require.NoError(t, err)

	_, err = lineage.Generations(g, parent)
	assert.ErrorIs(t, err, lineage.ErrCycleDetected)
}
