package badgeshelf

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/store"
)

func loaded(t *testing.T, ids ...string) *ShelfScreen {
	t.Helper()
	kv := store.NewMemory()
	if len(ids) > 0 {
		if err := progress.SaveProfile(context.Background(), kv, progress.Profile{Badges: ids}); err != nil {
			t.Fatal(err)
		}
	}
	s := New(&screen.Env{KV: kv})
	s.Update(s.Init()())
	return s
}

func TestShelfGroupsByType(t *testing.T) {
	s := loaded(t, "streak-5", "streak-10", "xp-100")

	view := s.View(100, 30)
	if !strings.Contains(view, "Total: 3 badges") {
		t.Errorf("missing total:\n%s", view)
	}
	if !strings.Contains(view, "10 correct in a row!") {
		t.Errorf("streak tab should list streak badges:\n%s", view)
	}
	if strings.Contains(view, "Earned 100 XP") {
		t.Error("xp badge should not show on the streak tab")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	view = s.View(100, 30)
	if !strings.Contains(view, "Earned 100 XP") {
		t.Errorf("xp tab should list xp badges:\n%s", view)
	}
}

func TestShelfEmpty(t *testing.T) {
	s := loaded(t)
	if !strings.Contains(s.View(100, 30), "No badges of this type yet") {
		t.Error("expected empty-state text")
	}
}

func TestShelfEscPops(t *testing.T) {
	s := loaded(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
