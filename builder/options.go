// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// options.go: functional options for Builder.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Build itself never panics.
//   • Seeding is explicit: WithSeed or WithRand.

package builder

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/metrics"
)

// BuilderOption customizes a Builder before its first Build.
type BuilderOption func(*builderConfig)

// WithRand provides the RNG used for age resampling. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed seeds a fresh RNG. Seed 0 selects the package default seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rngFromSeed(seed) }
}

// WithLogger sets the logger for skip warnings and build summaries. Panics on nil.
func WithLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) { c.log = l }
}

// WithMetrics records build statistics on m. A nil collector disables metrics.
func WithMetrics(m *metrics.Collector) BuilderOption {
	return func(c *builderConfig) { c.metrics = m }
}

// WithDefaultLifeExpectancy sets L for persons without a species.
// Panics unless L is positive and finite.
func WithDefaultLifeExpectancy(l float64) BuilderOption {
	if l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		panic(fmt.Sprintf("builder: WithDefaultLifeExpectancy(%g)", l))
	}
	return func(c *builderConfig) { c.lifeExpect = l }
}

// WithPool makes the builder draw spare identifiers from p. Panics on nil.
func WithPool(p *compat.Pool) BuilderOption {
	if p == nil {
		panic("builder: WithPool(nil)")
	}
	return func(c *builderConfig) { c.pool = p }
}
