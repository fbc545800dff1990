// Package grade maps average scores to letter tiers.
package grade

// Tier is the letter grade derived from a record's average score.
type Tier string

// Tier constants, best to worst.
const (
	TierAPlus Tier = "A+"
	TierA     Tier = "A"
	TierB     Tier = "B"
	TierC     Tier = "C"
	TierD     Tier = "D"
	TierF     Tier = "F"
)

// Threshold bounds, inclusive lower bounds evaluated highest-first.
const (
	thresholdAPlus = 90
	thresholdA     = 80
	thresholdB     = 70
	thresholdC     = 60
	thresholdD     = 50
)

// FromScore returns the tier for an average score. Boundaries are exact:
// a score of exactly 90 is A+, 89.999 is A, and so on down the bands.
func FromScore(score float64) Tier {
	switch {
	case score >= thresholdAPlus:
		return TierAPlus
	case score >= thresholdA:
		return TierA
	case score >= thresholdB:
		return TierB
	case score >= thresholdC:
		return TierC
	case score >= thresholdD:
		return TierD
	default:
		return TierF
	}
}
