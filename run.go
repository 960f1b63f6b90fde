package main

import (
	"context"
	"fmt"
	"time"
)

// Run modes. ModeAuto picks distribute when every color carries a value.
const (
	ModeAuto       = "auto"
	ModeCalculate  = "calculate"
	ModeDistribute = "distribute"
)

// SplitResult is the JSON-serializable outcome of one run.
type SplitResult struct {
	Mode           string        `json:"mode"`
	BuyInPerPerson float64       `json:"buyInPerPerson"`
	Distribution   *Distribution `json:"distribution"`
	DeviationPct   float64       `json:"deviationPct"`
	Efficiency     float64       `json:"efficiency"`
	WithinTol      bool          `json:"withinTolerance"`
	TimeMs         int64         `json:"timeMs"`
}

// runSplit wires a parsed configuration into the optimizer and packages the
// result. It is shared by the CLI and the lambda entry point.
func runSplit(ctx context.Context, cfg *PokerConfig, tuning Config, mode string) (*SplitResult, error) {
	if mode == ModeAuto {
		if cfg.HasFixedValues() {
			mode = ModeDistribute
		} else {
			mode = ModeCalculate
		}
	}

	chips := cfg.ChipSet()
	opt := NewOptimizer(chips, cfg.BuyInPerPerson, cfg.NumPlayers, tuning)

	start := time.Now()
	var (
		dist *Distribution
		tol  float64
		err  error
	)
	switch mode {
	case ModeDistribute:
		var fixed map[string]float64
		fixed, err = cfg.FixedValues()
		if err != nil {
			return nil, err
		}
		dist, err = opt.Distribute(ctx, fixed)
		tol = tuning.DistributeTolerance
	case ModeCalculate:
		dist, err = opt.Optimize(ctx)
		tol = tuning.Tolerance
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	dev := dist.Deviation(cfg.BuyInPerPerson)
	return &SplitResult{
		Mode:           mode,
		BuyInPerPerson: cfg.BuyInPerPerson,
		Distribution:   dist,
		DeviationPct:   dev / cfg.BuyInPerPerson * 100,
		Efficiency:     dist.Efficiency(),
		WithinTol:      dev <= tol*cfg.BuyInPerPerson,
		TimeMs:         time.Since(start).Milliseconds(),
	}, nil
}

// estimateSearchSpace returns the permutation count and the average number
// of quantity combinations per permutation, for the pre-search log line.
func estimateSearchSpace(chips ChipSet, poolSize, players int) (perms int64, combos int64) {
	perms = permutationCount(poolSize, len(chips.Colors))
	combos = 1
	for _, color := range chips.Colors {
		if maxPer := chips.Counts[color] / players; maxPer > 0 {
			combos *= int64(maxPer)
		}
	}
	return perms, combos
}
