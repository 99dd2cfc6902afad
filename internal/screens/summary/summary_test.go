package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Title:    "Number Warm-up",
		Duration: 95 * time.Second,
		Total:    4,
		Correct:  3,
		Accuracy: 0.75,
		XPEarned: 30,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Level Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Level Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(100, 24)
	for _, want := range []string{"Number Warm-up done!", "1:35", "Accuracy: 75%", "XP earned: 30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Moves") {
		t.Error("a question level should not show moves")
	}
}

func TestSummaryScreen_PuzzleShowsMoves(t *testing.T) {
	s := New(session.Summary{Title: "Rainbow Square", Moves: 7, XPEarned: 12}, nil)
	view := s.View(100, 24)
	if !strings.Contains(view, "Moves: 7") {
		t.Errorf("expected moves in view:\n%s", view)
	}
	if strings.Contains(view, "Accuracy") {
		t.Error("a puzzle should not show accuracy")
	}
}

func TestSummaryScreen_Badges(t *testing.T) {
	awards := []badges.Award{{
		ID:     "streak-3",
		Type:   badges.TypeOf("streak-3"),
		Rarity: badges.RarityCommon,
		Reason: "3 correct in a row",
	}}
	view := New(testSummary(), awards).View(100, 24)
	if !strings.Contains(view, "3 correct in a row") {
		t.Errorf("expected badge reason in view:\n%s", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary(), nil)
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %s", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on %s", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(), nil)
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
