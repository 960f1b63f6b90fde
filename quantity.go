package main

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"
	"sync"
)

// Internal signals for a single value-assignment candidate. The permutation
// scan skips over both; only a scan where every candidate fails surfaces to
// the caller, as the fallback distribution.
var (
	errInfeasible       = errors.New("a color cannot supply one chip per player")
	errOutsideTolerance = errors.New("no quantity combination within tolerance")
)

// quantityRequest fixes the value assignment a quantity search runs under.
// vals is ordered like ChipSet.Colors.
type quantityRequest struct {
	vals       []float64
	target     float64
	tolerance  float64
	requireAll bool // every color must contribute at least one chip
}

type quantityResult struct {
	qty       []int
	perPlayer float64
	sc        score
}

// ── Quantity search ─────────────────────────────────────────────────

// bestQuantities finds the per-player chip counts that best match the target
// under the given value assignment. The combination space is enumerated
// exhaustively while it fits under MaxExhaustive, and sampled around
// heuristic seeds beyond that.
func (o *Optimizer) bestQuantities(ctx context.Context, req quantityRequest) (quantityResult, error) {
	k := len(req.vals)
	lo := make([]int, k)
	max := make([]int, k)
	for i, color := range o.chips.Colors {
		max[i] = o.chips.Counts[color] / o.players
		if req.requireAll {
			if max[i] == 0 {
				return quantityResult{}, errInfeasible
			}
			lo[i] = 1
		}
	}

	space := combinationSpace(lo, max, int64(o.cfg.MaxExhaustive))

	var best quantityResult
	var found bool
	if space <= int64(o.cfg.MaxExhaustive) {
		best, found = o.exhaustiveQuantities(ctx, req, lo, max, space)
	} else {
		best, found = o.sampleQuantities(req, lo, max)
	}
	if !found {
		return quantityResult{}, errOutsideTolerance
	}
	return best, nil
}

// rateQuantities scores one combination. The second return is false when the
// combination deviates from the target by more than the tolerance.
func (o *Optimizer) rateQuantities(qty []int, req quantityRequest) (quantityResult, bool) {
	perPlayer := 0.0
	chips := 0
	for i, q := range qty {
		perPlayer += req.vals[i] * float64(q)
		chips += q
	}
	if math.Abs(perPlayer-req.target) > req.tolerance*req.target {
		return quantityResult{}, false
	}
	return quantityResult{
		qty:       append([]int(nil), qty...),
		perPlayer: perPlayer,
		sc:        scoreOf(perPlayer, chips, req.target, o.cfg.GraceBand),
	}, true
}

// ── Exhaustive enumeration ──────────────────────────────────────────

// exhaustiveQuantities scores the whole Cartesian product. The flat index
// range is split into one contiguous batch per worker; each worker walks its
// slice with an odometer and reports a local best, reduced sequentially by
// the parent. Workers share nothing mutable.
func (o *Optimizer) exhaustiveQuantities(ctx context.Context, req quantityRequest, lo, max []int, space int64) (quantityResult, bool) {
	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if int64(workers) > space {
		workers = int(space)
	}

	type batchBest struct {
		res   quantityResult
		found bool
	}
	batches := make([]batchBest, workers)
	per := space / int64(workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := int64(w) * per
		end := start + per
		if w == workers-1 {
			end = space
		}
		wg.Add(1)
		go func(w int, start, end int64) {
			defer wg.Done()
			qty := decodeCombination(start, lo, max)
			var local quantityResult
			localFound := false
			for idx := start; idx < end; idx++ {
				if idx%1024 == 0 && ctx.Err() != nil {
					break
				}
				if r, ok := o.rateQuantities(qty, req); ok {
					if !localFound || r.sc.betterThan(local.sc) {
						local = r
						localFound = true
					}
				}
				nextCombination(qty, lo, max)
			}
			batches[w] = batchBest{local, localFound}
		}(w, start, end)
	}
	wg.Wait()

	// Reduce in batch order so ties resolve to the lowest flat index no
	// matter how the goroutines are scheduled.
	var best quantityResult
	found := false
	for _, b := range batches {
		if b.found && (!found || b.res.sc.betterThan(best.sc)) {
			best = b.res
			found = true
		}
	}
	return best, found
}

// decodeCombination converts a flat index into a quantity vector, least
// significant digit last (matching nextCombination).
func decodeCombination(idx int64, lo, max []int) []int {
	qty := make([]int, len(lo))
	for i := len(lo) - 1; i >= 0; i-- {
		width := int64(max[i] - lo[i] + 1)
		qty[i] = lo[i] + int(idx%width)
		idx /= width
	}
	return qty
}

// nextCombination advances the odometer in place.
func nextCombination(qty, lo, max []int) {
	for i := len(qty) - 1; i >= 0; i-- {
		if qty[i] < max[i] {
			qty[i]++
			return
		}
		qty[i] = lo[i]
	}
}

// ── Randomized sampling ─────────────────────────────────────────────

// sampleQuantities handles spaces too large to enumerate: it scores a few
// heuristic seed vectors plus bounded random perturbations of each. The RNG
// comes from Config.Seed, so results are reproducible.
func (o *Optimizer) sampleQuantities(req quantityRequest, lo, max []int) (quantityResult, bool) {
	seeds := [][]int{
		greedyQuantities(req.vals, lo, max, req.target, true),
		greedyQuantities(req.vals, lo, max, req.target, false),
		balancedQuantities(req.vals, lo, max, req.target),
	}

	var best quantityResult
	found := false
	consider := func(qty []int) {
		if r, ok := o.rateQuantities(qty, req); ok {
			if !found || r.sc.betterThan(best.sc) {
				best = r
				found = true
			}
		}
	}

	work := make([]int, len(lo))
	for _, seed := range seeds {
		consider(seed)
		for s := 0; s < o.cfg.SamplesPerSeed; s++ {
			copy(work, seed)
			// nudge one or two colors by a small delta within capacity
			touches := 1 + o.rng.Intn(2)
			for t := 0; t < touches; t++ {
				i := o.rng.Intn(len(work))
				delta := o.rng.Intn(5) - 2
				q := work[i] + delta
				if q < lo[i] {
					q = lo[i]
				}
				if q > max[i] {
					q = max[i]
				}
				work[i] = q
			}
			consider(work)
		}
	}
	return best, found
}

// greedyQuantities builds a vector by filling the remaining target color by
// color, highest value first (or lowest when highFirst is false): baseline
// coverage from the floor, then top-down fill without overshooting.
func greedyQuantities(vals []float64, lo, max []int, target float64, highFirst bool) []int {
	qty := append([]int(nil), lo...)
	remaining := target
	for i, q := range qty {
		remaining -= float64(q) * vals[i]
	}

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if highFirst {
			return vals[order[a]] > vals[order[b]]
		}
		return vals[order[a]] < vals[order[b]]
	})

	for _, i := range order {
		if remaining <= 0 {
			break
		}
		add := int(remaining / vals[i])
		if room := max[i] - qty[i]; add > room {
			add = room
		}
		if add > 0 {
			qty[i] += add
			remaining -= float64(add) * vals[i]
		}
	}
	return qty
}

// balancedQuantities aims an equal share of the target at every color.
func balancedQuantities(vals []float64, lo, max []int, target float64) []int {
	qty := append([]int(nil), lo...)
	share := target / float64(len(vals))
	for i := range qty {
		q := int(math.Round(share / vals[i]))
		if q < lo[i] {
			q = lo[i]
		}
		if q > max[i] {
			q = max[i]
		}
		qty[i] = q
	}
	return qty
}
