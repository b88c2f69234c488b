package services

// decayStep is one breakpoint of the recency step function
type decayStep struct {
	maxAgeHours float64
	factor      float64
}

// Recency decay policy. Fresh content gets a strong multiplicative boost
// that steps down with age; the factor is always positive so decay can
// suppress but never zero out an engagement score.
var decaySteps = []decayStep{
	{1, 3.0},
	{3, 2.5},
	{6, 2.0},
	{12, 1.5},
	{24, 1.2},
	{48, 0.8},
	{72, 0.3},
}

const decayFloor = 0.2

// DecayFactor maps content age in hours into a multiplicative decay
// factor in (0, 3]. The function is monotonically non-increasing with age.
func DecayFactor(ageHours float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}
	for _, step := range decaySteps {
		if ageHours < step.maxAgeHours {
			return step.factor
		}
	}
	return decayFloor
}
