package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLevel marks a level whose shape does not fit its mode.
var ErrInvalidLevel = errors.New("invalid level")

// LevelError reports a level that failed shape validation.
type LevelError struct {
	Index int
	Mode  Mode
	Err   error
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("%s level %d: %v", e.Mode, e.Index, e.Err)
}

func (e *LevelError) Unwrap() []error { return []error{ErrInvalidLevel, e.Err} }

var validate = validator.New()

// LevelSet is the ordered levels of one grade/subject file. Levels are kept
// as raw JSON and decoded on access, so one malformed level does not hide
// the others.
type LevelSet struct {
	Grade   Grade
	Subject string
	Mode    Mode

	raw  []json.RawMessage
	quiz []Question
}

// NewLevelSet builds a set from a bare JSON array of levels for a
// level-based mode.
func NewLevelSet(grade Grade, subject string, data []byte) (*LevelSet, error) {
	mode := ModeForSubject(subject)
	set := &LevelSet{Grade: grade, Subject: subject, Mode: mode}
	if mode == ModeQuiz {
		if err := json.Unmarshal(data, &set.quiz); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		return set, nil
	}
	if err := json.Unmarshal(data, &set.raw); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	return set, nil
}

// Len returns the number of playable levels. A quiz file counts as a single
// level when it holds any questions.
func (s *LevelSet) Len() int {
	if s == nil {
		return 0
	}
	if s.Mode == ModeQuiz {
		if len(s.quiz) == 0 {
			return 0
		}
		return 1
	}
	return len(s.raw)
}

// Level decodes and validates the level at the 1-based index. Callers are
// expected to clamp the index first.
func (s *LevelSet) Level(index int) (Level, error) {
	if index < 1 || index > s.Len() {
		return Level{}, fmt.Errorf("level %d out of range [1,%d]", index, s.Len())
	}
	lvl := Level{Mode: s.Mode, Index: index}

	if s.Mode == ModeQuiz {
		q := &QuizLevel{Subject: s.Subject, Questions: s.quiz}
		if err := validate.Struct(q); err != nil {
			return Level{}, &LevelError{Index: index, Mode: s.Mode, Err: err}
		}
		lvl.Quiz = q
		return lvl, nil
	}

	raw := s.raw[index-1]
	if err := LevelSchema(s.Mode).ValidateJSON(raw); err != nil {
		return Level{}, &LevelError{Index: index, Mode: s.Mode, Err: err}
	}

	var target any
	switch s.Mode {
	case ModePuzzle:
		lvl.Puzzle = &PuzzleLevel{}
		target = lvl.Puzzle
	case ModeDragDrop:
		lvl.DragDrop = &DragDropLevel{}
		target = lvl.DragDrop
	case ModeBattle:
		lvl.Battle = &BattleLevel{}
		target = lvl.Battle
	default:
		return Level{}, &LevelError{Index: index, Mode: s.Mode, Err: fmt.Errorf("unknown mode")}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return Level{}, &LevelError{Index: index, Mode: s.Mode, Err: err}
	}
	if err := validate.Struct(target); err != nil {
		return Level{}, &LevelError{Index: index, Mode: s.Mode, Err: err}
	}
	return lvl, nil
}

// Questions returns the raw question list of a quiz set.
func (s *LevelSet) Questions() []Question {
	return s.quiz
}
