package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistributionReport(t *testing.T) {
	chips := NewChipSet(map[string]int{"white": 40, "red": 20})
	d := &Distribution{
		Values:         map[string]float64{"red": 0.5, "white": 0.25},
		PerPlayer:      map[string]int{"red": 8, "white": 18},
		ValuePerPlayer: 8.5,
		Unused:         map[string]int{"red": 4, "white": 4},
		Players:        2,
	}

	report := FormatDistribution(d, chips, 10.0)
	assert.Contains(t, report, "POKER CHIP DISTRIBUTION RESULTS")
	assert.Contains(t, report, "Buy-in per player: $10.00")
	assert.Contains(t, report, "Number of players: 2")
	assert.Contains(t, report, "Total pot: $20.00")
	assert.Contains(t, report, "Red: $0.50")
	assert.Contains(t, report, "White: 18 chips ($4.50)")
	assert.Contains(t, report, "Total value per player: $8.50")
	assert.Contains(t, report, "Error: $1.50 (15.0%)")
	assert.Contains(t, report, "Unused Chips:")
	assert.Contains(t, report, "Red: 4 chips")
	assert.NotContains(t, report, "perfect efficiency")
}

func TestFormatDistributionPerfect(t *testing.T) {
	chips := NewChipSet(map[string]int{"white": 40, "red": 20})
	d := &Distribution{
		Values:         map[string]float64{"red": 0.5, "white": 0.25},
		PerPlayer:      map[string]int{"red": 10, "white": 20},
		ValuePerPlayer: 10.0,
		Unused:         map[string]int{"red": 0, "white": 0},
		Players:        2,
	}

	report := FormatDistribution(d, chips, 10.0)
	assert.Contains(t, report, "perfect efficiency")
	assert.NotContains(t, report, "Efficiency:")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "White", titleCase("white"))
	assert.Equal(t, "", titleCase(""))
	assert.Equal(t, "Red", titleCase("Red"))
}
