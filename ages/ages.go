// SPDX-License-Identifier: MIT
//
// Package ages computes biologically plausible parent ages relative to a
// child's age and a species life expectancy L.
//
// Model (all bounds are gaps between parent and child, in years):
//
//	min  = 0.1625·L   smallest valid generational gap
//	mean = 0.325·L    centre of the resampling distribution
//	max  = 0.625·L    upper clamp of the resampling distribution
//
// A parent age P is valid for a child age A iff P − A ≥ min. Resampling draws
// z ~ N(0,1) and maps it onto an asymmetric gap: mean + z·(mean−min) for z < 0,
// mean + z·(max−mean) otherwise. The gap is clamped into [min, max] and the
// result rounded to whole years.
//
// Determinism:
//   - Pure functions; the only state is the caller-supplied *rand.Rand.
//   - Same rng state ⇒ same sample.
package ages

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/kinship/person"
)

// Scale factors applied to the life expectancy.
const (
	minGapFactor  = 0.1625
	meanGapFactor = 0.325
	maxGapFactor  = 0.625
)

var (
	// ErrBadLifeExpectancy indicates L ≤ 0, NaN or Inf.
	ErrBadLifeExpectancy = errors.New("ages: life expectancy must be positive and finite")

	// ErrNeedRandSource indicates a nil *rand.Rand.
	ErrNeedRandSource = errors.New("ages: rng is required")
)

// Bounds returns the minimum, mean and maximum generational gaps for life expectancy L.
func Bounds(lifeExpectancy float64) (minGap, meanGap, maxGap float64) {
	return minGapFactor * lifeExpectancy, meanGapFactor * lifeExpectancy, maxGapFactor * lifeExpectancy
}

// Valid reports whether parentAge − childAge ≥ min for life expectancy L.
func Valid(parentAge, childAge int, lifeExpectancy float64) bool {
	minGap, _, _ := Bounds(lifeExpectancy)
	return float64(parentAge-childAge) >= minGap
}

// Sample draws a valid parent age for a child of age childAge.
//
// Errors:
//   - ErrNeedRandSource when rng is nil.
//   - ErrBadLifeExpectancy when L is not a positive finite number.
func Sample(rng *rand.Rand, childAge int, lifeExpectancy float64) (int, error) {
	if rng == nil {
		return 0, ErrNeedRandSource
	}
	if lifeExpectancy <= 0 || math.IsNaN(lifeExpectancy) || math.IsInf(lifeExpectancy, 0) {
		return 0, fmt.Errorf("Sample(L=%g): %w", lifeExpectancy, ErrBadLifeExpectancy)
	}

	minGap, meanGap, maxGap := Bounds(lifeExpectancy)
	z := rng.NormFloat64()
	var gap float64
	if z < 0 {
		gap = meanGap + z*(meanGap-minGap)
	} else {
		gap = meanGap + z*(maxGap-meanGap)
	}
	gap = math.Max(minGap, math.Min(maxGap, gap))

	age := int(math.Round(float64(childAge) + gap))
	// Rounding may land just under a fractional minimum.
	if floor := childAge + int(math.Ceil(minGap)); age < floor {
		age = floor
	}

	return age, nil
}

// Reassign sets p's biological age to bio and shifts the chronological age by
// the same amount, preserving their offset.
func Reassign(p *person.Person, bio int) error {
	if p == nil {
		return person.ErrNilPerson
	}
	offset := p.ChronologicalAge() - p.BiologicalAge()
	if offset < 0 {
		offset = 0
	}

	return p.SetAges(bio, bio+offset)
}

// Correct checks p against childAge and, when the gap is too small, resamples
// and reassigns p's ages. It reports whether p was changed.
func Correct(rng *rand.Rand, p *person.Person, childAge int, lifeExpectancy float64) (bool, error) {
	if p == nil {
		return false, person.ErrNilPerson
	}
	if Valid(p.BiologicalAge(), childAge, lifeExpectancy) {
		return false, nil
	}
	age, err := Sample(rng, childAge, lifeExpectancy)
	if err != nil {
		return false, err
	}
	if err = Reassign(p, age); err != nil {
		return false, err
	}

	return true, nil
}
