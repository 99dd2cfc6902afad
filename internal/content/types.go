package content

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Grade identifies a school year, "grade1" through "grade9".
type Grade string

const (
	MinGrade = 1
	MaxGrade = 9
)

// DefaultGrade is used when nothing else is selected.
const DefaultGrade Grade = "grade1"

// GradeOf returns the grade for a 1-based number.
func GradeOf(n int) Grade {
	return Grade("grade" + strconv.Itoa(n))
}

// ParseGrade accepts "grade3", "Grade 3" or "3".
func ParseGrade(s string) (Grade, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "grade")
	v = strings.TrimSpace(v)
	n, err := strconv.Atoi(v)
	if err != nil || n < MinGrade || n > MaxGrade {
		return "", fmt.Errorf("invalid grade %q: want grade%d..grade%d", s, MinGrade, MaxGrade)
	}
	return GradeOf(n), nil
}

// Number returns the 1-based grade number, or 0 if g is malformed.
func (g Grade) Number() int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(g), "grade"))
	if err != nil || n < MinGrade || n > MaxGrade {
		return 0
	}
	return n
}

// DisplayName returns "Grade 3" style text.
func (g Grade) DisplayName() string {
	if n := g.Number(); n > 0 {
		return fmt.Sprintf("Grade %d", n)
	}
	return string(g)
}

// Grades lists every supported grade in order.
func Grades() []Grade {
	out := make([]Grade, 0, MaxGrade)
	for n := MinGrade; n <= MaxGrade; n++ {
		out = append(out, GradeOf(n))
	}
	return out
}

// Mode is the game mechanic a level file is played with.
type Mode string

const (
	ModePuzzle   Mode = "puzzle"
	ModeDragDrop Mode = "dragdrop"
	ModeBattle   Mode = "battle"
	ModeQuiz     Mode = "quiz"
)

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModePuzzle:
		return "Puzzle"
	case ModeDragDrop:
		return "Drag & Drop"
	case ModeBattle:
		return "Quiz Battle"
	case ModeQuiz:
		return "Quiz"
	default:
		return string(m)
	}
}

// Subjects are the content files a grade can carry. The game subjects map
// to their own mode; everything else is a quiz.
var Subjects = []string{
	"puzzle", "dragdrop", "battle",
	"english", "maths", "science", "gk", "computer", "evs",
}

// ModeForSubject returns the mode a subject file is played with.
func ModeForSubject(subject string) Mode {
	switch strings.ToLower(subject) {
	case "puzzle":
		return ModePuzzle
	case "dragdrop":
		return ModeDragDrop
	case "battle":
		return ModeBattle
	default:
		return ModeQuiz
	}
}

// PuzzleLevel is one sliding-tile picture.
type PuzzleLevel struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Question string `json:"question"`
	Hint     string `json:"hint"`
	Image    string `json:"image"`
	Grid     int    `json:"grid"`
}

const (
	DefaultGrid = 3
	MinGrid     = 2
	MaxGrid     = 6
)

// GridSize returns the board dimension, defaulting to 3 and clamped to [2,6].
func (p PuzzleLevel) GridSize() int {
	g := p.Grid
	if g == 0 {
		g = DefaultGrid
	}
	return min(max(g, MinGrid), MaxGrid)
}

// Pair is a drag item and the target it belongs on.
type Pair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// UnmarshalJSON accepts both {left,right} and the {drag,target} spelling.
func (p *Pair) UnmarshalJSON(b []byte) error {
	var raw struct {
		Left   string `json:"left"`
		Right  string `json:"right"`
		Drag   string `json:"drag"`
		Target string `json:"target"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Left = cmp.Or(raw.Drag, raw.Left)
	p.Right = cmp.Or(raw.Target, raw.Right)
	return nil
}

// DragDropLevel is a set of pairs to match.
type DragDropLevel struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Pairs []Pair `json:"pairs" validate:"required,min=1,dive"`
}

// Question is a multiple-choice question used by quiz and battle modes.
type Question struct {
	Question    string           `json:"question" validate:"required"`
	Options     []string         `json:"options"`
	Answer      string           `json:"answer" validate:"required"`
	Subject     string           `json:"subject,omitempty"`
	Topic       string           `json:"topic,omitempty"`
	Chapter     string           `json:"chapter,omitempty"`
	Explanation *ExplanationSpec `json:"explanation,omitempty"`
}

// BattleLevel is a timed run of questions.
type BattleLevel struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Desc      string     `json:"desc"`
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
}

// QuizLevel is a whole subject quiz file played as one level.
type QuizLevel struct {
	Subject   string
	Questions []Question `validate:"required,min=1,dive"`
}

// ExplanationSpec is the optional explanation attached to a question. In
// JSON it is either a plain string or {"correct": ..., "whyWrong": {...}}.
type ExplanationSpec struct {
	Text     string
	Correct  string
	WhyWrong map[string]string

	structured bool
}

// Structured reports whether the explanation came in object form.
func (e *ExplanationSpec) Structured() bool { return e != nil && e.structured }

func (e *ExplanationSpec) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = ExplanationSpec{Text: s}
		return nil
	}
	var obj struct {
		Correct  string            `json:"correct"`
		WhyWrong map[string]string `json:"whyWrong"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("explanation must be a string or object: %w", err)
	}
	*e = ExplanationSpec{Correct: obj.Correct, WhyWrong: obj.WhyWrong, structured: true}
	return nil
}

func (e ExplanationSpec) MarshalJSON() ([]byte, error) {
	if !e.structured {
		return json.Marshal(e.Text)
	}
	return json.Marshal(struct {
		Correct  string            `json:"correct,omitempty"`
		WhyWrong map[string]string `json:"whyWrong,omitempty"`
	}{e.Correct, e.WhyWrong})
}

// TextExplanation builds a plain string explanation.
func TextExplanation(s string) *ExplanationSpec {
	return &ExplanationSpec{Text: s}
}

// StructuredExplanation builds an object-form explanation.
func StructuredExplanation(correct string, whyWrong map[string]string) *ExplanationSpec {
	return &ExplanationSpec{Correct: correct, WhyWrong: whyWrong, structured: true}
}

// Level is one decoded, validated level. Exactly one of the mode fields is
// set, matching Mode.
type Level struct {
	Mode  Mode
	Index int // 1-based position in its set

	Puzzle   *PuzzleLevel
	DragDrop *DragDropLevel
	Battle   *BattleLevel
	Quiz     *QuizLevel
}

// Title returns the level's display title.
func (l Level) Title() string {
	switch {
	case l.Puzzle != nil:
		return l.Puzzle.Title
	case l.DragDrop != nil:
		return l.DragDrop.Title
	case l.Battle != nil:
		return l.Battle.Title
	case l.Quiz != nil:
		return SubjectTitle(l.Quiz.Subject) + " Quiz"
	}
	return ""
}

// Lesson is an entry of a grade's video or music lesson list.
type Lesson struct {
	ID        int    `json:"id"`
	Title     string `json:"title" validate:"required"`
	Desc      string `json:"desc"`
	Src       string `json:"src" validate:"required"`
	Subtitles string `json:"subtitles,omitempty"`
	Lyrics    string `json:"lyrics,omitempty"`
}

// LessonKind names a lesson list file.
type LessonKind string

const (
	LessonsVideo LessonKind = "videoLessons"
	LessonsMusic LessonKind = "musicLesson"
)

// SubjectTitle capitalises a subject name for display.
func SubjectTitle(subject string) string {
	switch strings.ToLower(subject) {
	case "gk":
		return "GK"
	case "evs":
		return "EVS"
	case "dragdrop":
		return "Drag & Drop"
	case "":
		return ""
	}
	return strings.ToUpper(subject[:1]) + subject[1:]
}
