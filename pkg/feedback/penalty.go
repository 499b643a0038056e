package feedback

// PenaltyWindowDays is the trailing window feedback is averaged over when
// recomputing a donor's penalty score.
const PenaltyWindowDays = 30

// PenaltyFromAverage maps a 1-5 average rating to a 0-100 penalty score.
// A perfect average (5) yields 0; a minimum average (1) yields 100.
func PenaltyFromAverage(avgRating float64) float64 {
	penalty := (5 - avgRating) * 25
	if penalty < 0 {
		return 0
	}
	if penalty > 100 {
		return 100
	}
	return penalty
}
