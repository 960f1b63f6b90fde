package main

import "math"

// ── Candidate scoring ───────────────────────────────────────────────
//
// A candidate is judged on two axes: how close its per-player value lands to
// the target buy-in, and how many chips each player ends up holding. More
// chips make for a better game, but only while the buy-in stays honest, so
// accuracy dominates: deviations beyond the grace band are penalized hard,
// and chip count only decides between candidates whose penalties tie.

type score struct {
	penalty float64 // deviation beyond the grace band, scaled
	chips   int     // chips per player
}

// scoreOf rates a candidate with per-player value sum and chip count against
// the target. Deviation inside the grace band carries no penalty.
func scoreOf(perPlayer float64, chips int, target, grace float64) score {
	dev := math.Abs(perPlayer - target)
	penalty := 0.0
	if dev > grace {
		penalty = (dev - grace) * 100
	}
	return score{penalty: penalty, chips: chips}
}

// betterThan reports whether s beats o: lower penalty wins, chip count
// breaks ties.
func (s score) betterThan(o score) bool {
	if s.penalty != o.penalty {
		return s.penalty < o.penalty
	}
	return s.chips > o.chips
}

// ── Search-space accounting ─────────────────────────────────────────

// permutationCount returns P(n, k): the number of ordered k-selections from
// a pool of n values. Saturates at math.MaxInt64 to avoid overflow.
func permutationCount(n, k int) int64 {
	total := int64(1)
	for i := 0; i < k; i++ {
		f := int64(n - i)
		if f <= 0 {
			return 0
		}
		if total > math.MaxInt64/f {
			return math.MaxInt64
		}
		total *= f
	}
	return total
}

// combinationSpace returns the size of the quantity Cartesian product given
// per-color ranges [lo, max]. Saturates at limit+1 so callers can compare
// against a threshold without overflow.
func combinationSpace(lo, max []int, limit int64) int64 {
	total := int64(1)
	for i := range max {
		width := int64(max[i] - lo[i] + 1)
		if width <= 0 {
			return 0
		}
		total *= width
		if total > limit {
			return limit + 1
		}
	}
	return total
}
