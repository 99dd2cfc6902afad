package progress

import (
	"strings"
	"time"
)

// Storage keys.
const (
	KeyProgress    = "user-progress"
	KeyLeaderboard = "leaderboard"
	KeyProfile     = "profile"
	KeyStudentName = "studentName"
	xpKeyPrefix    = "pa_xp_"
)

// XPKey is the key holding lifetime XP earned in one grade.
func XPKey(grade string) string {
	return xpKeyPrefix + grade
}

// State is the persisted progress ledger.
type State struct {
	XP           int            `json:"xp"`
	Quizzes      int            `json:"quizzes"`
	Correct      int            `json:"correct"`
	LastGrade    string         `json:"lastGrade,omitempty"`
	LastSubject  string         `json:"lastSubject,omitempty"`
	SubjectStats map[string]int `json:"subjectStats"`
	Streak       int            `json:"streak"`
	BestStreak   int            `json:"bestStreak"`
	LastPlayed   string         `json:"lastPlayed,omitempty"`
	WeeklyXP     int            `json:"weeklyXP"`
	WeeklyTarget int            `json:"weeklyTarget"`
	WeekStart    string         `json:"weekStart,omitempty"`
}

func defaultState() State {
	return State{
		SubjectStats: map[string]int{},
		WeeklyTarget: DefaultWeeklyTarget,
	}
}

// sanitize replaces out-of-range values with their defaults.
func (s *State) sanitize() {
	if s.SubjectStats == nil {
		s.SubjectStats = map[string]int{}
	}
	if s.WeeklyTarget <= 0 {
		s.WeeklyTarget = DefaultWeeklyTarget
	}
	s.XP = max(s.XP, 0)
	s.WeeklyXP = max(s.WeeklyXP, 0)
	s.Streak = max(s.Streak, 0)
}

func (s State) clone() State {
	out := s
	out.SubjectStats = make(map[string]int, len(s.SubjectStats))
	for k, v := range s.SubjectStats {
		out.SubjectStats[k] = v
	}
	return out
}

// GoalStatus summarises weekly progress for display.
type GoalStatus string

const (
	GoalCompleted GoalStatus = "completed"
	GoalAlmost    GoalStatus = "almost"
	GoalKeepGoing GoalStatus = "keep-going"
)

// Message returns the encouragement line shown under the weekly bar.
func (g GoalStatus) Message() string {
	switch g {
	case GoalCompleted:
		return "Weekly goal completed!"
	case GoalAlmost:
		return "Almost there, keep going!"
	default:
		return "Keep learning to reach your goal!"
	}
}

// WeeklyGoal reports where s stands against its weekly target.
func (s State) WeeklyGoal() GoalStatus {
	switch {
	case s.WeeklyXP >= s.WeeklyTarget:
		return GoalCompleted
	case s.WeeklyXP*2 >= s.WeeklyTarget:
		return GoalAlmost
	default:
		return GoalKeepGoing
	}
}

// WeeklyPercent is weekly XP as a share of the target, capped at 100.
func (s State) WeeklyPercent() int {
	if s.WeeklyTarget <= 0 {
		return 0
	}
	return min(100, s.WeeklyXP*100/s.WeeklyTarget)
}

// weekStartLayouts are the stamps accepted when reading WeekStart. Older
// ledgers carry a browser date string.
var weekStartLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"Mon Jan 02 2006",
}

func parseStamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range weekStartLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
