package rating

import "math"

// Default ledger parameters.
const (
	DefaultInitialStrength = 1500.0
	DefaultKFactor         = 20.0
	DefaultFormWindow      = 10
	eloScale               = 400.0
)

// ExpectedScore returns the logistic probability that a side rated home beats
// a side rated away.
func ExpectedScore(home, away float64) float64 {
	return 1 / (1 + math.Pow(10, (away-home)/eloScale))
}

// Pythagorean returns the run-based expectation RS²/(RS²+RA²), or 0.5 when
// no runs have been recorded.
func Pythagorean(runsFor, runsAgainst int) float64 {
	if runsFor+runsAgainst == 0 {
		return 0.5
	}
	rs := float64(runsFor) * float64(runsFor)
	ra := float64(runsAgainst) * float64(runsAgainst)
	return rs / (rs + ra)
}
