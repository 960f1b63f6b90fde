//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagJSON       bool
	flagVerbose    bool
	flagSeed       int64
	flagTimeout    time.Duration
	flagValues     []float64
	flagOutput     string
	flagForce      bool
	flagWithValues bool

	rootCmd = &cobra.Command{
		Use:   "chipsplit",
		Short: "Calculate optimal poker chip distributions",
		Long: `chipsplit assigns dollar values to chip colors and works out how many
chips of each color every player should receive for a target buy-in.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	calculateCmd = &cobra.Command{
		Use:   "calculate <config>",
		Short: "Search value assignments and quantities for a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(args[0], ModeCalculate)
		},
	}

	distributeCmd = &cobra.Command{
		Use:   "distribute <config>",
		Short: "Compute quantities for a config with fixed chip values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(args[0], ModeDistribute)
		},
	}

	createExampleCmd = &cobra.Command{
		Use:   "create-example",
		Short: "Write an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagOutput
			if path == "" {
				path = "poker_config_example.yaml"
			}
			if _, err := os.Stat(path); err == nil && !flagForce {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := ExampleConfig(flagWithValues).SaveYAML(path); err != nil {
				return err
			}
			fmt.Printf("Example configuration created at: %s\n", path)
			fmt.Printf("Edit it and run:\n  chipsplit calculate %s\n", path)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output results as JSON")

	for _, cmd := range []*cobra.Command{calculateCmd, distributeCmd} {
		cmd.Flags().Int64Var(&flagSeed, "seed", 1, "sampling RNG seed")
		cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "abort the search after this long (0 = no limit)")
	}
	calculateCmd.Flags().Float64SliceVar(&flagValues, "values", nil, "custom candidate chip values (e.g. --values 0.25,0.5,1,5)")

	createExampleCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file name")
	createExampleCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite an existing file")
	createExampleCmd.Flags().BoolVar(&flagWithValues, "with-values", false, "pin a value to every color (distribute mode example)")

	rootCmd.AddCommand(calculateCmd, distributeCmd, createExampleCmd)
}

func runCommand(configPath, mode string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	tuning := DefaultConfig()
	tuning.Seed = flagSeed
	if len(flagValues) > 0 {
		tuning.Values = flagValues
	}

	chips := cfg.ChipSet()
	slog.Info("loaded configuration",
		"players", cfg.NumPlayers,
		"buyIn", cfg.BuyInPerPerson,
		"pot", cfg.BuyInPerPerson*float64(cfg.NumPlayers),
		"colors", len(chips.Colors),
		"totalChips", chips.TotalChips(),
	)
	if mode == ModeCalculate {
		perms, combos := estimateSearchSpace(chips, len(tuning.Values), cfg.NumPlayers)
		slog.Info("search space", "permutations", perms, "avgCombinations", combos)
	}

	ctx := context.Background()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	res, err := runSplit(ctx, cfg, tuning, mode)
	if err != nil {
		return err
	}
	if !res.WithinTol {
		slog.Warn("no distribution within tolerance, showing the minimal fallback",
			"deviationPct", res.DeviationPct)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Println(FormatDistribution(res.Distribution, chips, cfg.BuyInPerPerson))
	return nil
}
