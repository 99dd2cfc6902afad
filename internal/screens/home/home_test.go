package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/play"
	"github.com/abhisek/playarcade/internal/store"
)

func newTestHome() *HomeScreen {
	return New(&screen.Env{KV: store.NewMemory(), Catalog: content.Embedded(nil)})
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestRestoresLastGradeAndSubject(t *testing.T) {
	h := newTestHome()
	h.Update(stateMsg{state: progress.State{LastGrade: "grade2", LastSubject: "puzzle", XP: 40}})

	if h.currentGrade() != content.GradeOf(2) {
		t.Errorf("grade = %s, want grade2", h.currentGrade())
	}
	if h.currentSubject() != "puzzle" {
		t.Errorf("subject = %q, want puzzle", h.currentSubject())
	}
	if !strings.Contains(h.Status(), "40 XP") {
		t.Errorf("status should show XP: %q", h.Status())
	}
}

func TestRestoreHappensOnce(t *testing.T) {
	h := newTestHome()
	h.Update(stateMsg{state: progress.State{LastGrade: "grade2"}})
	h.Update(key("g"))
	h.Update(stateMsg{state: progress.State{LastGrade: "grade2"}})

	if h.currentGrade() != content.GradeOf(3) {
		t.Errorf("a later refresh must not move the grade back, got %s", h.currentGrade())
	}
}

func TestSubjectsFollowTheCatalog(t *testing.T) {
	h := newTestHome()
	h.Update(key("g")) // grade2 carries fewer subjects than grade1
	for _, s := range h.subjects {
		if s == "english" {
			t.Errorf("grade2 has no english file, subjects = %v", h.subjects)
		}
	}
	if len(h.subjects) == 0 {
		t.Fatal("grade2 should still list its subjects")
	}
}

func TestPlayPushesPlayScreen(t *testing.T) {
	h := newTestHome()
	_, cmd := h.Update(key("enter"))
	if cmd == nil {
		t.Fatal("PLAY should push a screen")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*play.PlayScreen); !ok {
		t.Errorf("pushed %T, want *play.PlayScreen", push.Screen)
	}
}

func TestUnwiredServicesAreDisabled(t *testing.T) {
	h := newTestHome()
	for _, item := range h.menu.Items {
		switch item.Label {
		case "TUTOR", "LEADERBOARD", "LESSONS":
			if !item.Disabled {
				t.Errorf("%s should be disabled without its service", item.Label)
			}
		case "PLAY", "BADGES":
			if item.Disabled {
				t.Errorf("%s should be enabled", item.Label)
			}
		}
	}
}

func TestPickerFocusChangesSubject(t *testing.T) {
	h := newTestHome()
	h.Update(key("tab")) // menu -> grade
	h.Update(key("tab")) // grade -> subject
	if h.focus != focusSubject {
		t.Fatalf("focus = %d, want subject", h.focus)
	}
	before := h.currentSubject()
	h.Update(key("right"))
	if h.currentSubject() == before {
		t.Error("right should move to the next subject")
	}
}

func TestViewShowsMenu(t *testing.T) {
	h := newTestHome()
	out := h.View(120, 50)
	for _, want := range []string{"PLAY", "MY PROGRESS", "EXIT"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
