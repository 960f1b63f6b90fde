package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"
)

// Configuration errors surfaced to the caller before any search runs.
var (
	ErrInsufficientValues = errors.New("not enough candidate values for all colors")
	ErrMissingValues      = errors.New("missing fixed values")
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer searches value assignments and per-player quantities for the
// chip distribution closest to the target buy-in. The best record so far
// lives on the optimizer itself and is folded in after each candidate's
// evaluation completes, never mid-flight.
type Optimizer struct {
	chips   ChipSet
	target  float64 // buy-in per player
	players int
	cfg     Config
	log     *slog.Logger
	rng     *rand.Rand

	best      *Distribution
	bestScore score
	evaluated int64
}

// NewOptimizer creates an optimizer for one calculation. buyIn is the target
// value per player.
func NewOptimizer(chips ChipSet, buyIn float64, players int, cfg Config) *Optimizer {
	return &Optimizer{
		chips:   chips,
		target:  buyIn,
		players: players,
		cfg:     cfg,
		log:     slog.Default(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// ── Calculate mode: permutation search over the value pool ──────────

// Optimize assigns distinct pool values to colors, trying permutations of
// the candidate pool and running a quantity search for each, and returns
// the best-scoring distribution. When no candidate lands within tolerance
// it returns the deterministic fallback; callers that care must check the
// returned record's Deviation against the tolerance themselves.
func (o *Optimizer) Optimize(ctx context.Context) (*Distribution, error) {
	colors := o.chips.Colors
	pool := o.cfg.Values
	if len(pool) < len(colors) {
		return nil, fmt.Errorf("%w: %d values for %d colors", ErrInsufficientValues, len(pool), len(colors))
	}

	maxChips := o.chips.MaxChipsPerPlayer(o.players)
	o.log.Info("starting value search",
		"colors", len(colors),
		"pool", len(pool),
		"permutations", permutationCount(len(pool), len(colors)),
		"maxChipsPerPlayer", maxChips,
	)

	// Search-order heuristic only: values near the ideal per-chip price are
	// tried first so the early-exit rules fire sooner. Every permutation is
	// still reachable, so the winner is unaffected.
	ordered := append([]float64(nil), pool...)
	ideal := o.target
	if maxChips > 0 {
		ideal = o.target / float64(maxChips)
	}
	sort.Slice(ordered, func(a, b int) bool {
		return math.Abs(ordered[a]-ideal) < math.Abs(ordered[b]-ideal)
	})

	start := time.Now()
	o.best = nil
	o.evaluated = 0
	req := quantityRequest{
		vals:       make([]float64, len(colors)),
		target:     o.target,
		tolerance:  o.cfg.Tolerance,
		requireAll: true,
	}
	o.scanPermutations(ctx, ordered, req, maxChips)

	o.log.Info("value search done",
		"evaluated", o.evaluated,
		"elapsed", time.Since(start),
		"found", o.best != nil,
	)

	if o.best == nil {
		return o.fallback(pool), nil
	}
	return o.best, nil
}

// scanPermutations walks ordered k-selections of the pool, depth-first. The
// scan stops early on context cancellation or once the current best passes
// the early-termination thresholds.
func (o *Optimizer) scanPermutations(ctx context.Context, pool []float64, req quantityRequest, maxChips int) {
	k := len(o.chips.Colors)
	used := make([]bool, len(pool))

	var walk func(depth int) bool
	walk = func(depth int) bool {
		if ctx.Err() != nil {
			return true
		}
		if depth == k {
			return o.evaluateAssignment(ctx, req, maxChips)
		}
		for i, v := range pool {
			if used[i] {
				continue
			}
			used[i] = true
			req.vals[depth] = v
			stop := walk(depth + 1)
			used[i] = false
			if stop {
				return true
			}
		}
		return false
	}
	walk(0)
}

// evaluateAssignment runs the quantity search for the value assignment in
// req.vals and folds the result into the running best. It returns true when
// the scan should stop.
func (o *Optimizer) evaluateAssignment(ctx context.Context, req quantityRequest, maxChips int) bool {
	o.evaluated++
	if o.evaluated%50_000 == 0 {
		o.log.Debug("search progress", "evaluated", o.evaluated, "found", o.best != nil)
	}

	r, err := o.bestQuantities(ctx, req)
	if err != nil {
		// infeasible or outside tolerance: skip this assignment
		return false
	}
	if o.best == nil || r.sc.betterThan(o.bestScore) {
		o.best = o.record(req.vals, r.qty, r.perPlayer)
		o.bestScore = r.sc
	}

	dev := math.Abs(r.perPlayer - o.target)
	if dev < 1e-9 && r.sc.chips == maxChips {
		return true
	}
	if dev <= o.cfg.EarlyDevFrac*o.target && float64(r.sc.chips) >= o.cfg.EarlyChipFrac*float64(maxChips) {
		return true
	}
	return false
}

// ── Distribute mode: externally fixed values ────────────────────────

// Distribute computes quantities for a complete caller-supplied value
// assignment. buyIn semantics match Optimize: the target is per player, not
// the whole pot. Colors are not forced to contribute a chip. When nothing
// lands within tolerance the fixed-value fallback is returned; check the
// record's Deviation.
func (o *Optimizer) Distribute(ctx context.Context, fixed map[string]float64) (*Distribution, error) {
	vals := make([]float64, len(o.chips.Colors))
	var missing []string
	for i, color := range o.chips.Colors {
		v, ok := fixed[color]
		if !ok || v <= 0 {
			missing = append(missing, color)
			continue
		}
		vals[i] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingValues, missing)
	}

	req := quantityRequest{
		vals:      vals,
		target:    o.target,
		tolerance: o.cfg.DistributeTolerance,
	}
	r, err := o.bestQuantities(ctx, req)
	if err != nil {
		o.log.Warn("no quantity combination within tolerance, using fallback", "target", o.target)
		return o.fallbackWith(vals), nil
	}
	return o.record(vals, r.qty, r.perPlayer), nil
}

// ── Fallback ────────────────────────────────────────────────────────

// fallback builds the minimal always-valid record for calculate mode: pool
// values assigned to colors in pool order, one chip of each color per
// player. The pool's last value repeats if the pool is shorter than the
// color list; Optimize guards against that upstream.
func (o *Optimizer) fallback(pool []float64) *Distribution {
	vals := make([]float64, len(o.chips.Colors))
	for i := range vals {
		if i < len(pool) {
			vals[i] = pool[i]
		} else {
			vals[i] = pool[len(pool)-1]
		}
	}
	return o.fallbackWith(vals)
}

// fallbackWith gives every player one chip of each color under the given
// values. Unused counts clamp at zero: a color smaller than the player
// count stays structurally valid rather than failing.
func (o *Optimizer) fallbackWith(vals []float64) *Distribution {
	qty := make([]int, len(vals))
	perPlayer := 0.0
	for i, v := range vals {
		qty[i] = 1
		perPlayer += v
	}
	d := o.record(vals, qty, perPlayer)
	for color, n := range d.Unused {
		if n < 0 {
			d.Unused[color] = 0
		}
	}
	return d
}

// record materializes a Distribution from the slice form used during the
// search.
func (o *Optimizer) record(vals []float64, qty []int, perPlayer float64) *Distribution {
	values := make(map[string]float64, len(vals))
	perColor := make(map[string]int, len(qty))
	unused := make(map[string]int, len(qty))
	for i, color := range o.chips.Colors {
		values[color] = vals[i]
		perColor[color] = qty[i]
		unused[color] = o.chips.Counts[color] - qty[i]*o.players
	}
	return &Distribution{
		Values:         values,
		PerPlayer:      perColor,
		ValuePerPlayer: perPlayer,
		Unused:         unused,
		Players:        o.players,
	}
}
