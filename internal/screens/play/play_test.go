package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/puzzle"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/shuffle"
	"github.com/abhisek/playarcade/internal/store"
)

func testEnv() *screen.Env {
	loader := content.Embedded(nil)
	return &screen.Env{
		KV:      store.NewMemory(),
		Content: loader,
		Boards:  puzzle.NewResolver(loader.FS(), nil),
		Player:  "Asha",
		Session: []session.Option{session.WithRand(shuffle.Seeded(7))},
	}
}

// start builds a play screen and delivers its initial load synchronously.
func start(t *testing.T, grade content.Grade, subject string) *PlayScreen {
	t.Helper()
	s := New(testEnv(), grade, subject, 1)
	msg := s.load()()
	s.Update(msg)
	t.Cleanup(s.Close)
	return s
}

func press(s *PlayScreen, key string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch key {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "right":
		msg = tea.KeyPressMsg{Code: tea.KeyRight}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		msg = tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func TestLoadsFirstLevel(t *testing.T) {
	s := start(t, content.GradeOf(1), "battle")

	if s.machine == nil {
		t.Fatal("expected a running session")
	}
	if s.snap.Mode != content.ModeBattle {
		t.Errorf("mode = %q, want battle", s.snap.Mode)
	}
	if s.snap.Level != 1 {
		t.Errorf("level = %d, want 1", s.snap.Level)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Level 1 of") {
		t.Errorf("view should show the level counter, got:\n%s", view)
	}
}

func TestCorrectBattleAnswerLocksAndPays(t *testing.T) {
	s := start(t, content.GradeOf(1), "battle")

	idx := -1
	for i, o := range s.snap.Options {
		if o == s.snap.Question.Answer {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("answer not among options")
	}
	press(s, string(rune('a'+idx)))

	if !s.snap.Locked {
		t.Fatal("expected the question to lock after answering")
	}
	if s.snap.Feedback == nil || !s.snap.Feedback.Correct {
		t.Fatalf("expected correct feedback, got %+v", s.snap.Feedback)
	}
	if s.snap.XP != 10 {
		t.Errorf("XP = %d, want 10", s.snap.XP)
	}
	if !strings.Contains(s.Status(), "10 XP") {
		t.Errorf("status = %q", s.Status())
	}

	// Answers are ignored while locked.
	press(s, "b")
	if s.snap.XP != 10 {
		t.Errorf("locked question paid again: XP = %d", s.snap.XP)
	}
}

func TestEnterAdvancesLockedQuestion(t *testing.T) {
	s := start(t, content.GradeOf(1), "battle")
	press(s, "a")
	if !s.snap.Locked {
		t.Fatal("expected lock")
	}

	cmd := press(s, "enter")
	if cmd == nil {
		t.Fatal("expected an advance command")
	}
	s.Update(cmd())
	if s.snap.QuestionIndex != 1 {
		t.Errorf("question index = %d, want 1", s.snap.QuestionIndex)
	}
	if s.snap.Locked {
		t.Error("next question should be unlocked")
	}
}

func TestPuzzleSwapCountsMove(t *testing.T) {
	s := start(t, content.GradeOf(1), "puzzle")
	if s.snap.Grid != 2 {
		t.Fatalf("grid = %d, want 2", s.snap.Grid)
	}

	press(s, "enter")
	if s.picked != 0 {
		t.Fatalf("picked = %d, want 0", s.picked)
	}
	press(s, "right")
	press(s, "enter")

	if s.snap.Moves != 1 {
		t.Errorf("moves = %d, want 1", s.snap.Moves)
	}
	if s.picked != -1 {
		t.Error("pick should clear after a swap")
	}
	if s.snap.XP < 1 {
		t.Errorf("a move should pay at least 1 XP, got %d", s.snap.XP)
	}
}

func TestPuzzleCursorStaysOnBoard(t *testing.T) {
	s := start(t, content.GradeOf(1), "puzzle")
	for range 5 {
		press(s, "right")
		press(s, "down")
	}
	if s.cursor != 3 {
		t.Errorf("cursor = %d, want 3", s.cursor)
	}
}

func TestDragDropWrongThenRight(t *testing.T) {
	s := start(t, content.GradeOf(1), "dragdrop")
	label := s.snap.Items[0].Label

	want := -1
	// Find the target that accepts item 0 by trying each one.
	for j := range s.snap.Targets {
		press(s, string(rune('1'+j)))
		if s.snap.Targets[j].Correct {
			want = j
			break
		}
	}
	if want < 0 {
		t.Fatalf("no target accepted %q", label)
	}
	if !s.snap.Items[0].Done {
		t.Error("matched item should be done")
	}
	if s.note != "Great match! 🎉" {
		t.Errorf("note = %q", s.note)
	}
}

func TestMissingSubjectShowsUnavailable(t *testing.T) {
	s := start(t, content.GradeOf(2), "english")

	if s.machine != nil {
		t.Fatal("no session should start for a missing file")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "No levels here yet") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	s := New(testEnv(), content.GradeOf(1), "battle", 1)
	t.Cleanup(s.Close)

	first := s.load()
	s.subject = "puzzle"
	second := s.load()

	s.Update(first())
	if s.machine != nil {
		t.Fatal("an outdated load must be ignored")
	}
	s.Update(second())
	if s.snap.Mode != content.ModePuzzle {
		t.Errorf("mode = %q, want puzzle", s.snap.Mode)
	}
}

func TestTypingCapturesEscape(t *testing.T) {
	s := start(t, content.GradeOf(1), "english")

	press(s, "t")
	if !s.CapturesEscape() {
		t.Fatal("typing mode should capture esc")
	}
	press(s, "esc")
	if s.CapturesEscape() {
		t.Error("esc should leave typing mode")
	}
}

func TestFinishReplacesWithSummary(t *testing.T) {
	s := start(t, content.GradeOf(1), "battle")

	cmd := press(s, "q")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
}

func TestNextLevel(t *testing.T) {
	s := start(t, content.GradeOf(1), "battle")

	cmd := press(s, "n")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	s.Update(cmd())
	if s.snap.Level != 2 {
		t.Errorf("level = %d, want 2", s.snap.Level)
	}
}
