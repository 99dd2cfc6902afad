package session

import "time"

// Summary holds the data shown when a level is finished.
type Summary struct {
	Title    string
	Duration time.Duration
	Total    int
	Correct  int
	Accuracy float64
	XPEarned int
	Moves    int
}

// BuildSummary creates a Summary from a snapshot.
func BuildSummary(s Snapshot) Summary {
	total := s.QuestionCount
	var accuracy float64
	if total > 0 {
		accuracy = float64(s.Correct) / float64(total)
	}
	return Summary{
		Title:    s.Title,
		Duration: s.Elapsed,
		Total:    total,
		Correct:  s.Correct,
		Accuracy: accuracy,
		XPEarned: s.LevelXP,
		Moves:    s.Moves,
	}
}
