package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAccuracyDominates(t *testing.T) {
	target, grace := 10.0, 0.25

	close := scoreOf(10.1, 5, target, grace)   // inside the grace band
	far := scoreOf(12.0, 50, target, grace)    // way off, many chips
	exact := scoreOf(10.0, 5, target, grace)   // dead on, few chips
	closeBig := scoreOf(9.9, 30, target, grace)

	assert.True(t, close.betterThan(far), "grace-band result must beat a large deviation regardless of chips")
	assert.True(t, exact.betterThan(far))
	// inside the band the penalty is zero for both, so chips decide
	assert.True(t, closeBig.betterThan(exact))
	assert.True(t, closeBig.betterThan(close))
}

func TestScoreZeroInsideGraceBand(t *testing.T) {
	sc := scoreOf(10.24, 3, 10.0, 0.25)
	assert.Zero(t, sc.penalty)
	sc = scoreOf(10.26, 3, 10.0, 0.25)
	assert.Greater(t, sc.penalty, 0.0)
}

func TestPermutationCount(t *testing.T) {
	assert.Equal(t, int64(1), permutationCount(5, 0))
	assert.Equal(t, int64(5), permutationCount(5, 1))
	assert.Equal(t, int64(20), permutationCount(5, 2))
	assert.Equal(t, int64(272), permutationCount(17, 2))
	assert.Equal(t, int64(0), permutationCount(3, 4))
}

func TestCombinationSpace(t *testing.T) {
	assert.Equal(t, int64(200), combinationSpace([]int{1, 1}, []int{20, 10}, 1000))
	assert.Equal(t, int64(1), combinationSpace([]int{0}, []int{0}, 1000))
	// saturates just past the limit instead of overflowing
	assert.Equal(t, int64(101), combinationSpace([]int{0, 0, 0}, []int{9999, 9999, 9999}, 100))
}
