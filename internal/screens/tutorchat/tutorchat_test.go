package tutorchat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/tutor"
)

func typeText(s *ChatScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestAskOffline(t *testing.T) {
	s := New(&screen.Env{Tutor: tutor.New(nil)})
	t.Cleanup(s.Close)

	typeText(s, "hello")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an ask command")
	}
	if !s.waiting {
		t.Error("screen should wait for the reply")
	}

	s.Update(cmd())
	if s.waiting {
		t.Error("reply should end the wait")
	}
	if len(s.lines) != 3 {
		t.Fatalf("lines = %d, want greeting, question and reply", len(s.lines))
	}
	if !s.lines[1].fromUser || s.lines[1].text != "hello" {
		t.Errorf("unexpected question line %+v", s.lines[1])
	}
	if s.lines[2].text == "" {
		t.Error("expected a canned reply")
	}
}

func TestBlankQuestionIsIgnored(t *testing.T) {
	s := New(&screen.Env{Tutor: tutor.New(nil)})
	t.Cleanup(s.Close)

	typeText(s, "   ")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("blank input should not ask")
	}
}

func TestHindiReplyShowsLanguage(t *testing.T) {
	s := New(&screen.Env{Tutor: tutor.New(nil)})
	t.Cleanup(s.Close)

	typeText(s, "नमस्ते")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())

	if !strings.Contains(s.View(100, 30), "Hindi") {
		t.Errorf("expected the reply language in view:\n%s", s.View(100, 30))
	}
}

func TestResetClearsChat(t *testing.T) {
	s := New(&screen.Env{Tutor: tutor.New(nil)})
	t.Cleanup(s.Close)

	typeText(s, "hi")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})

	if len(s.lines) != 1 {
		t.Errorf("lines = %d, want only the greeting", len(s.lines))
	}
}
