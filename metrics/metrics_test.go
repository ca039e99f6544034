// SPDX-License-Identifier: MIT

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/metrics"
)

func TestCollector_Records(t *testing.T) {
	c := metrics.NewCollector("test")

	c.ObserveBuild(20 * time.Millisecond)
	c.RelationApplied("parent")
	c.RelationApplied("parent")
	c.RelationApplied("friend")
	c.RelationsRemovedBy(3)
	c.UnitSkipped("unresolved")
	c.ParentsSynthesizedBy(2)
	c.AgesCorrectedBy(0)
	c.CompatibilitySwapsBy(1)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Builds))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.RelationsApplied.WithLabelValues("parent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RelationsApplied.WithLabelValues("friend")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.RelationsRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UnitsSkipped.WithLabelValues("unresolved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ParentsSynthesized))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.AgesCorrected))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CompatibilitySwaps))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := metrics.NewCollector("")
	b := metrics.NewCollector("")
	a.ObserveBuild(time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Builds))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveBuild(time.Second)
		c.RelationApplied("x")
		c.RelationsRemovedBy(1)
		c.UnitSkipped("x")
		c.ParentsSynthesizedBy(1)
		c.AgesCorrectedBy(1)
		c.CompatibilitySwapsBy(1)
	})
	assert.Nil(t, c.Registry())
}
