// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng          = rand seeded with defaultRNGSeed
//   • log          = zap.NewNop()
//   • metrics      = nil (no-op)
//   • lifeExpect   = DefaultLifeExpectancy
//   • pool         = empty compat.Pool, grown on first Build
//
// AI-Hints:
//   • WithSeed(0) means "default seed", not "no randomness".
//   • Share a Pool between builders only if they never run concurrently.

package builder

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/metrics"
)

// builderConfig aggregates all knobs of a Builder.
type builderConfig struct {
	rng        *rand.Rand
	log        *zap.Logger
	metrics    *metrics.Collector
	lifeExpect float64
	pool       *compat.Pool
}

// newBuilderConfig applies opts in order over the defaults; last wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		log:        zap.NewNop(),
		lifeExpect: DefaultLifeExpectancy,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rngFromSeed(0)
	}
	if cfg.pool == nil {
		cfg.pool = compat.NewPool()
	}

	return cfg
}

// rngFromSeed returns a deterministic *rand.Rand; seed==0 selects defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}
