package main

// DefaultChipValues is the standard denomination ladder in dollars, used
// when the configuration does not pin values to colors.
var DefaultChipValues = []float64{
	0.05, 0.10, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100, 200, 250, 500, 1000, 2000, 5000,
}

// Config holds search tuning parameters. Adjust these to trade speed for
// solution quality.
type Config struct {
	// Values is the candidate denomination pool for calculate mode.
	Values []float64
	// Tolerance is the acceptable deviation from the target buy-in as a
	// fraction of the target, for calculate mode.
	Tolerance float64
	// DistributeTolerance is the (stricter) fraction used in fixed-value
	// distribute mode, where no alternative value assignment can absorb
	// a miss.
	DistributeTolerance float64
	// GraceBand is the absolute deviation in dollars below which accuracy
	// stops mattering and chip count decides between candidates.
	GraceBand float64
	// MaxExhaustive is the largest quantity-combination space that is
	// enumerated exhaustively; larger spaces fall back to sampling.
	MaxExhaustive int
	// SamplesPerSeed is the number of random perturbations generated from
	// each heuristic seed vector in sampling mode.
	SamplesPerSeed int
	// Seed feeds the sampling RNG. Fixed so runs are reproducible; tests
	// override it.
	Seed int64
	// EarlyDevFrac and EarlyChipFrac control early termination of the
	// permutation scan: stop once a result deviates by at most
	// EarlyDevFrac*target AND holds at least EarlyChipFrac of the
	// theoretical per-player chip maximum.
	EarlyDevFrac  float64
	EarlyChipFrac float64
	// Workers caps the quantity-scoring worker pool. 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the tuning used by the CLI.
func DefaultConfig() Config {
	return Config{
		Values:              DefaultChipValues,
		Tolerance:           0.20,
		DistributeTolerance: 0.10,
		GraceBand:           0.25,
		MaxExhaustive:       200_000,
		SamplesPerSeed:      400,
		Seed:                1,
		EarlyDevFrac:        0.01,
		EarlyChipFrac:       0.95,
		Workers:             0,
	}
}
