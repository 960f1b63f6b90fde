package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyDistribution runs the invariant checklist against an optimizer
// result.
func verifyDistribution(t *testing.T, d *Distribution, chips ChipSet, buyIn, tolerance float64, pool []float64) {
	t.Helper()

	poolSet := map[float64]bool{}
	for _, v := range pool {
		poolSet[v] = true
	}

	// 1. every color carries a value drawn from the candidate pool
	seen := map[float64]bool{}
	for _, color := range chips.Colors {
		v, ok := d.Values[color]
		if !ok {
			t.Errorf("color %s: no value assigned", color)
			continue
		}
		if !poolSet[v] {
			t.Errorf("color %s: value %v not in the candidate pool", color, v)
		}
		// 2. values are distinct across colors
		if seen[v] {
			t.Errorf("color %s: duplicate value %v", color, v)
		}
		seen[v] = true
	}

	for _, color := range chips.Colors {
		qty := d.PerPlayer[color]
		// 3. every color contributes at least one chip per player
		if qty < 1 {
			t.Errorf("color %s: %d chips per player, want >= 1", color, qty)
		}
		// 4. allocation never exceeds the inventory
		if qty*d.Players > chips.Counts[color] {
			t.Errorf("color %s: %d players x %d chips exceeds inventory %d",
				color, d.Players, qty, chips.Counts[color])
		}
		// 5. dealt plus unused accounts for every chip
		if got := qty*d.Players + d.Unused[color]; got != chips.Counts[color] {
			t.Errorf("color %s: dealt+unused = %d, inventory = %d", color, got, chips.Counts[color])
		}
		if d.Unused[color] < 0 {
			t.Errorf("color %s: negative unused count %d", color, d.Unused[color])
		}
	}

	// 6. the stored per-player value matches an independent recompute
	if diff := d.PlayerValue() - d.ValuePerPlayer; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("stored per-player value %v, recomputed %v", d.ValuePerPlayer, d.PlayerValue())
	}

	// 7. the result lands within tolerance of the buy-in
	if dev := d.Deviation(buyIn); dev > tolerance*buyIn {
		t.Errorf("deviation $%.2f exceeds tolerance $%.2f", dev, tolerance*buyIn)
	}

	// 8. efficiency stays a percentage
	if eff := d.Efficiency(); eff < 0 || eff > 100 {
		t.Errorf("efficiency %v out of range", eff)
	}
}

func TestFullPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	cfg := &PokerConfig{
		BuyInPerPerson: 10.0,
		NumPlayers:     4,
		ChipColors: []ChipColor{
			{Name: "white", Count: 100},
			{Name: "red", Count: 80},
			{Name: "green", Count: 60},
		},
	}
	require.NoError(t, cfg.SaveYAML(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	tuning := DefaultConfig()
	tuning.Seed = 7
	res, err := runSplit(context.Background(), loaded, tuning, ModeAuto)
	require.NoError(t, err)
	require.NotNil(t, res.Distribution)

	assert.Equal(t, ModeCalculate, res.Mode, "a config without values optimizes them")
	assert.True(t, res.WithinTol)
	verifyDistribution(t, res.Distribution, loaded.ChipSet(), 10.0, tuning.Tolerance, tuning.Values)

	report := FormatDistribution(res.Distribution, loaded.ChipSet(), 10.0)
	assert.Contains(t, report, "POKER CHIP DISTRIBUTION RESULTS")
	assert.Contains(t, report, "Total value per player")
	for _, color := range []string{"White", "Red", "Green"} {
		assert.Contains(t, report, color)
	}
}

func TestFullPipelineDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("repeated full search")
	}
	cfg := &PokerConfig{
		BuyInPerPerson: 10.0,
		NumPlayers:     4,
		ChipColors: []ChipColor{
			{Name: "white", Count: 100},
			{Name: "red", Count: 80},
			{Name: "green", Count: 60},
		},
	}

	run := func() *SplitResult {
		tuning := DefaultConfig()
		tuning.Seed = 7
		res, err := runSplit(context.Background(), cfg, tuning, ModeCalculate)
		require.NoError(t, err)
		return res
	}

	first, second := run(), run()
	assert.Equal(t, first.Distribution.Values, second.Distribution.Values)
	assert.Equal(t, first.Distribution.PerPlayer, second.Distribution.PerPlayer)
	assert.Equal(t, first.DeviationPct, second.DeviationPct)
}

func TestEstimateSearchSpace(t *testing.T) {
	chips := NewChipSet(map[string]int{"white": 100, "red": 80, "green": 60})
	perms, combos := estimateSearchSpace(chips, 17, 4)
	assert.Equal(t, permutationCount(17, 3), perms)
	// 15 green x 20 red x 25 white quantity ceilings
	assert.Equal(t, int64(15*20*25), combos)
}
