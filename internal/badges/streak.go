package badges

// BaseStreakThreshold is the first streak length that earns a badge.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, award every 5.
	return ((current / 5) + 1) * 5
}

// XPMilestones are the lifetime XP totals that earn a badge.
var XPMilestones = []int{100, 500, 1000, 2500, 5000}
