package session

import (
	"time"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/evaluate"
	"github.com/abhisek/playarcade/internal/puzzle"
)

// State is the lifecycle position of a level session.
type State int

const (
	StateIdle        State = iota // Nothing loaded yet
	StateLoaded                   // Level ready, no move made
	StateInProgress               // Playing
	StateLocked                   // Answer submitted, waiting to advance
	StateSolved                   // Completion criterion met
	StateAdvancing                // Moving to the next level
	StateUnavailable              // No playable level
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StateInProgress:
		return "in_progress"
	case StateLocked:
		return "locked"
	case StateSolved:
		return "solved"
	case StateAdvancing:
		return "advancing"
	case StateUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Feedback is what the player sees after answering a question.
type Feedback struct {
	Correct     bool
	Selected    string
	Answer      string
	Explanation evaluate.Explanation
}

// Item is one drag-drop piece. Done is set once it sits on a matching
// target.
type Item struct {
	Label string
	Done  bool
}

// Target is one drag-drop drop zone as the view renders it.
type Target struct {
	Label   string
	Placed  string // item currently dropped here, if any
	Correct bool
}

// Snapshot is a read-only copy of the session for the view layer.
type Snapshot struct {
	SessionID string
	Mode      content.Mode
	State     State
	Grade     content.Grade
	Subject   string

	Level  int // 1-based
	Levels int
	Title  string
	Desc   string

	// Puzzle
	Grid      int
	BoardKind puzzle.Kind
	Image     string
	Tiles     []puzzle.Tile // by slot
	Moves     int

	// Drag-drop
	Items   []Item
	Targets []Target

	// Quiz and battle
	Question      *content.Question
	QuestionIndex int // 0-based
	QuestionCount int
	Options       []string
	Selected      string
	Correct       int
	Feedback      *Feedback

	Locked bool
	Solved bool

	XP      int // lifetime
	LevelXP int // earned in this level
	Streak  int
	Elapsed time.Duration

	Celebrate    bool
	NoMoreLevels bool
	NewBadges    []badges.Award
	Err          error
}
