// Package grade derives letter grades from numeric scores.
package grade

// Score bounds and letter thresholds
const (
	MinScore = 0
	MaxScore = 100

	thresholdA = 80
	thresholdB = 70
	thresholdC = 60
	thresholdD = 50
)

// Letter returns the letter grade for a score: A>=80, B>=70, C>=60, D>=50, else F.
func Letter(score int) string {
	switch {
	case score >= thresholdA:
		return "A"
	case score >= thresholdB:
		return "B"
	case score >= thresholdC:
		return "C"
	case score >= thresholdD:
		return "D"
	default:
		return "F"
	}
}

// ValidScore reports whether score is within the accepted 0-100 range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Passing reports whether a score meets the pass threshold (D or better).
func Passing(score int) bool {
	return score >= thresholdD
}
