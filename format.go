package main

import (
	"fmt"
	"strings"
)

// FormatDistribution renders the human-readable report. Colors follow the
// configuration order in chips.
func FormatDistribution(d *Distribution, chips ChipSet, buyIn float64) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("POKER CHIP DISTRIBUTION RESULTS\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "\nGame Configuration:\n")
	fmt.Fprintf(&b, "  Buy-in per player: $%.2f\n", buyIn)
	fmt.Fprintf(&b, "  Number of players: %d\n", d.Players)
	fmt.Fprintf(&b, "  Total pot: $%.2f\n", buyIn*float64(d.Players))

	fmt.Fprintf(&b, "\nChip Values:\n")
	for _, color := range chips.Colors {
		fmt.Fprintf(&b, "  %s: $%.2f\n", titleCase(color), d.Values[color])
	}

	fmt.Fprintf(&b, "\nPer Player Distribution:\n")
	for _, color := range chips.Colors {
		qty := d.PerPlayer[color]
		fmt.Fprintf(&b, "  %s: %d chips ($%.2f)\n", titleCase(color), qty, float64(qty)*d.Values[color])
	}

	fmt.Fprintf(&b, "\nTotal value per player: $%.2f\n", d.ValuePerPlayer)
	fmt.Fprintf(&b, "Target buy-in: $%.2f\n", buyIn)
	dev := d.Deviation(buyIn)
	fmt.Fprintf(&b, "Error: $%.2f (%.1f%%)\n", dev, dev/buyIn*100)

	if unused := d.TotalUnused(); unused == 0 {
		b.WriteString("\nUnused Chips: none - perfect efficiency!\n")
	} else {
		fmt.Fprintf(&b, "\nUnused Chips:\n")
		for _, color := range chips.Colors {
			if n := d.Unused[color]; n > 0 {
				fmt.Fprintf(&b, "  %s: %d chips\n", titleCase(color), n)
			}
		}
		fmt.Fprintf(&b, "\nEfficiency: %.1f%% (%d chips unused)\n", d.Efficiency(), unused)
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
