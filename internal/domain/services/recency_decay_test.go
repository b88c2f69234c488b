package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecayFactorSteps(t *testing.T) {
	cases := []struct {
		ageHours float64
		expected float64
	}{
		{0, 3.0},
		{0.5, 3.0},
		{1, 2.5},
		{2, 2.5},
		{5, 2.0},
		{11, 1.5},
		{23, 1.2},
		{47, 0.8},
		{71, 0.3},
		{72, 0.2},
		{100, 0.2},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, DecayFactor(tc.ageHours), "age %v hours", tc.ageHours)
	}
}

func TestDecayFactorMonotonicNonIncreasing(t *testing.T) {
	previous := DecayFactor(0)
	for age := 0.25; age <= 120; age += 0.25 {
		factor := DecayFactor(age)
		assert.LessOrEqual(t, factor, previous, "decay increased at age %v", age)
		previous = factor
	}
}

func TestDecayFactorNeverZero(t *testing.T) {
	assert.Greater(t, DecayFactor(1e6), 0.0)
}

func TestDecayFactorNegativeAgeClampsToFresh(t *testing.T) {
	assert.Equal(t, 3.0, DecayFactor(-5))
}
