// SPDX-License-Identifier: MIT

package compat

// OffsetFunc scores how compatible candidate is with source. Higher is better.
type OffsetFunc func(source, candidate int) float64

// Improve runs a single greedy pass over pool, looking for an identifier that
// scores strictly higher against sourceID than current does.
//
// When one is found it is taken out of the pool, current is returned to the
// pool, and the winner is reported with swapped=true. Otherwise current is
// reported unchanged and the pool is untouched. Ties keep the earlier
// candidate, and current wins every tie.
//
// Complexity: O(|pool|) offset evaluations.
func Improve(pool *Pool, offset OffsetFunc, sourceID, current int) (chosen int, swapped bool) {
	if pool == nil || offset == nil {
		return current, false
	}

	best, bestScore := current, offset(sourceID, current)
	for _, cand := range pool.IDs() {
		if s := offset(sourceID, cand); s > bestScore {
			best, bestScore = cand, s
		}
	}
	if best == current {
		return current, false
	}
	if err := pool.Take(best); err != nil {
		// Pool changed underneath the scan; keep the current identifier.
		return current, false
	}
	pool.Return(current)

	return best, true
}

// Offset is a deterministic pairwise score in [-1, 1] derived from two
// numeric identifiers with a SplitMix64 finalizer. It is symmetric in its
// arguments.
func Offset(a, b int) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	x := uint64(int64(lo))*0x9e3779b97f4a7c15 ^ uint64(int64(hi))
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	// Top 53 bits mapped to [0,1], then to [-1,1].
	unit := float64(x>>11) / float64(uint64(1)<<53-1)

	return unit*2 - 1
}
