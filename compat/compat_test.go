// SPDX-License-Identifier: MIT

package compat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/compat"
)

func counter(start int) compat.IDSourceFunc {
	next := start
	return func() int {
		next++
		return next
	}
}

func TestSizeFor(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 100, 10_000} {
		assert.Equal(t, 50, compat.SizeFor(n), "edgeCount=%d", n)
	}
}

func TestPool_EnsureSizeNeverShrinks(t *testing.T) {
	p := compat.NewPool()
	drawn, err := p.EnsureSize(5, counter(100))
	require.NoError(t, err)
	assert.Equal(t, 5, drawn)
	assert.Equal(t, []int{101, 102, 103, 104, 105}, p.IDs())

	drawn, err = p.EnsureSize(3, counter(200))
	require.NoError(t, err)
	assert.Zero(t, drawn)
	assert.Equal(t, 5, p.Len())

	_, err = p.EnsureSize(10, nil)
	assert.ErrorIs(t, err, compat.ErrNilSource)
}

func TestPool_TakeReturn(t *testing.T) {
	p := compat.NewPool(1, 2, 2, 3)
	require.NoError(t, p.Take(2))
	assert.True(t, p.Contains(2), "multiset keeps the second copy")
	require.NoError(t, p.Take(2))
	assert.False(t, p.Contains(2))
	assert.ErrorIs(t, p.Take(2), compat.ErrNotInPool)

	p.Return(9)
	assert.Equal(t, []int{1, 3, 9}, p.IDs())
}

func TestImprove_SwapIsNonDestructive(t *testing.T) {
	// Candidate score equals its value, source is ignored.
	score := func(_, c int) float64 { return float64(c) }
	p := compat.NewPool(5, 40, 7)

	chosen, swapped := compat.Improve(p, score, 1, 10)
	assert.True(t, swapped)
	assert.Equal(t, 40, chosen)
	assert.True(t, p.Contains(10), "original identifier recycled")
	assert.False(t, p.Contains(40))
	assert.Equal(t, 3, p.Len())
}

func TestImprove_KeepsCurrentOnTie(t *testing.T) {
	flat := func(_, _ int) float64 { return 0.5 }
	p := compat.NewPool(1, 2, 3)

	chosen, swapped := compat.Improve(p, flat, 99, 42)
	assert.False(t, swapped)
	assert.Equal(t, 42, chosen)
	assert.Equal(t, []int{1, 2, 3}, p.IDs())
}

func TestImprove_NilInputs(t *testing.T) {
	chosen, swapped := compat.Improve(nil, compat.Offset, 1, 2)
	assert.Equal(t, 2, chosen)
	assert.False(t, swapped)
}

func TestOffset(t *testing.T) {
	for a := -50; a < 50; a += 7 {
		for b := 0; b < 300; b += 13 {
			s := compat.Offset(a, b)
			assert.GreaterOrEqual(t, s, -1.0)
			assert.LessOrEqual(t, s, 1.0)
			assert.Equal(t, s, compat.Offset(b, a), "symmetric")
			assert.Equal(t, s, compat.Offset(a, b), "deterministic")
		}
	}
	assert.NotEqual(t, compat.Offset(1000, 1001), compat.Offset(1000, 1002))
}
