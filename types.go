package main

import "sort"

// ChipSet holds the available chips per color. Colors keeps the order the
// colors appeared in the configuration; that order decides which pool value
// lands on which color within a permutation, so it must be deterministic.
type ChipSet struct {
	Colors []string
	Counts map[string]int
}

// NewChipSet builds a ChipSet from a bare color->count map. Colors are
// sorted by name since map iteration order is not stable.
func NewChipSet(counts map[string]int) ChipSet {
	colors := make([]string, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	return ChipSet{Colors: colors, Counts: counts}
}

// Count returns the number of chips available for a color (0 if unknown).
func (s ChipSet) Count(color string) int {
	return s.Counts[color]
}

// TotalChips returns the total number of chips across all colors.
func (s ChipSet) TotalChips() int {
	total := 0
	for _, c := range s.Colors {
		total += s.Counts[c]
	}
	return total
}

// MaxChipsPerPlayer returns the theoretical maximum number of chips a single
// player can hold: sum over colors of floor(count/players).
func (s ChipSet) MaxChipsPerPlayer(players int) int {
	total := 0
	for _, c := range s.Colors {
		total += s.Counts[c] / players
	}
	return total
}

// Distribution is the result of one evaluated candidate: a value per color,
// a per-player quantity per color, and the chips left in the bank.
type Distribution struct {
	Values         map[string]float64 `json:"values"`
	PerPlayer      map[string]int     `json:"perPlayer"`
	ValuePerPlayer float64            `json:"valuePerPlayer"`
	Unused         map[string]int     `json:"unused"`
	Players        int                `json:"players"`
}

// PlayerValue recomputes the total value each player receives from the
// value and quantity maps. It must agree with the stored ValuePerPlayer.
func (d *Distribution) PlayerValue() float64 {
	total := 0.0
	for color, qty := range d.PerPlayer {
		total += d.Values[color] * float64(qty)
	}
	return total
}

// ChipsPerPlayer returns the total number of chips each player holds.
func (d *Distribution) ChipsPerPlayer() int {
	total := 0
	for _, qty := range d.PerPlayer {
		total += qty
	}
	return total
}

// TotalUnused returns the number of chips left in the bank.
func (d *Distribution) TotalUnused() int {
	total := 0
	for _, n := range d.Unused {
		total += n
	}
	return total
}

// Deviation returns the absolute difference between the per-player value
// and the given target buy-in.
func (d *Distribution) Deviation(target float64) float64 {
	dev := d.ValuePerPlayer - target
	if dev < 0 {
		dev = -dev
	}
	return dev
}

// Efficiency returns the percentage of chips handed out, in [0, 100].
// It is 0 when there are no chips at all.
func (d *Distribution) Efficiency() float64 {
	used := 0
	for _, qty := range d.PerPlayer {
		used += qty * d.Players
	}
	total := used + d.TotalUnused()
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
