// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters for relationship builds.
// Every recording method is safe on a nil *Collector, so callers can leave
// metrics unwired.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name when none is configured.
const DefaultNamespace = "kinship"

// Collector holds the build metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	Builds             prometheus.Counter
	BuildDuration      prometheus.Histogram
	RelationsApplied   *prometheus.CounterVec
	RelationsRemoved   prometheus.Counter
	UnitsSkipped       *prometheus.CounterVec
	ParentsSynthesized prometheus.Counter
	AgesCorrected      prometheus.Counter
	CompatibilitySwaps prometheus.Counter
}

// NewCollector creates a collector registered on its own registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Total number of relationship builds",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Relationship build duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		RelationsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relations_applied_total",
			Help:      "Relations added to the substrate",
		}, []string{"kind"}),
		RelationsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relations_removed_total",
			Help:      "Stale relations removed from the substrate",
		}),
		UnitsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_skipped_total",
			Help:      "Edges or groups skipped during a build",
		}, []string{"reason"}),
		ParentsSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parents_synthesized_total",
			Help:      "Hidden parents created by backfill",
		}),
		AgesCorrected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ages_corrected_total",
			Help:      "Hidden parents whose ages were resampled",
		}),
		CompatibilitySwaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compatibility_swaps_total",
			Help:      "Numeric identifier swaps made by the compatibility heuristic",
		}),
	}

	registry.MustRegister(
		c.Builds,
		c.BuildDuration,
		c.RelationsApplied,
		c.RelationsRemoved,
		c.UnitsSkipped,
		c.ParentsSynthesized,
		c.AgesCorrected,
		c.CompatibilitySwaps,
	)

	return c
}

// Registry returns the registry the collector's metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveBuild counts one build and records its duration.
func (c *Collector) ObserveBuild(d time.Duration) {
	if c == nil {
		return
	}
	c.Builds.Inc()
	c.BuildDuration.Observe(d.Seconds())
}

// RelationApplied counts one added relation of kind.
func (c *Collector) RelationApplied(kind string) {
	if c == nil {
		return
	}
	c.RelationsApplied.WithLabelValues(kind).Inc()
}

// RelationsRemovedBy adds n removed relations.
func (c *Collector) RelationsRemovedBy(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.RelationsRemoved.Add(float64(n))
}

// UnitSkipped counts one skipped edge or group.
func (c *Collector) UnitSkipped(reason string) {
	if c == nil {
		return
	}
	c.UnitsSkipped.WithLabelValues(reason).Inc()
}

// ParentsSynthesizedBy adds n synthesized parents.
func (c *Collector) ParentsSynthesizedBy(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ParentsSynthesized.Add(float64(n))
}

// AgesCorrectedBy adds n age corrections.
func (c *Collector) AgesCorrectedBy(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.AgesCorrected.Add(float64(n))
}

// CompatibilitySwapsBy adds n identifier swaps.
func (c *Collector) CompatibilitySwapsBy(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.CompatibilitySwaps.Add(float64(n))
}
