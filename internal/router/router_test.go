package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/screen"
)

type stubScreen struct {
	title  string
	inits  int
	closed bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed = true }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	play := &stubScreen{title: "play"}
	r.Update(PushScreenMsg{Screen: play})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "play" {
		t.Errorf("expected active 'play', got %q", r.Active().Title())
	}
	if play.inits != 1 {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopClosesAndRefreshes(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	play := &stubScreen{title: "play"}
	r.Push(play)
	r.Update(PopScreenMsg{})

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("expected home on top, got %q", r.Active().Title())
	}
	if !play.closed {
		t.Error("expected popped screen to be closed")
	}
	if home.inits != 1 {
		t.Errorf("expected home re-initialised once, got %d", home.inits)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if home.closed {
		t.Error("bottom screen must not be closed")
	}
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	play := &stubScreen{title: "play"}
	r.Push(play)

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("expected active 'summary', got %q", r.Active().Title())
	}
	if !play.closed || summary.inits != 1 {
		t.Error("expected replaced screen closed and new screen initialised")
	}
}

func TestCloseAll(t *testing.T) {
	a, b := &stubScreen{title: "a"}, &stubScreen{title: "b"}
	r := New(a)
	r.Push(b)
	r.CloseAll()
	if !a.closed || !b.closed {
		t.Error("expected every screen closed")
	}
}

func TestViewRendersActive(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View = %q", got)
	}
}
