package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/store"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome(t *testing.T, name string) (*WelcomeScreen, *screen.Env, *int) {
	t.Helper()
	env := &screen.Env{KV: store.NewMemory()}
	if name != "" {
		if err := progress.SetStudentName(context.Background(), env.KV, name); err != nil {
			t.Fatal(err)
		}
	}
	calls := 0
	w := New(env, func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	w.Update(readName(env.KV)())
	return w, env, &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _, _ := newTestWelcome(t, "Asha")

	if strings.Contains(w.View(80, 24), "Welcome back") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(80, 24), "Welcome back, Asha!") {
		t.Error("tagline should greet the returning player")
	}
}

func TestKeypressWithNameEmitsReplace(t *testing.T) {
	w, _, calls := newTestWelcome(t, "Asha")

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("factory should be called once, got %d", *calls)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
}

func TestFirstLaunchAsksForName(t *testing.T) {
	w, env, calls := newTestWelcome(t, "")

	w.Update(tea.KeyPressMsg{Code: ' '})
	if !w.asking || !w.CapturesEscape() {
		t.Fatal("expected the name prompt")
	}

	// Enter on an empty name does nothing.
	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("empty name should not continue")
	}

	for _, r := range "Ravi" {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected transition after naming")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
	if got := progress.StudentName(context.Background(), env.KV); got != "Ravi" {
		t.Errorf("stored name = %q, want Ravi", got)
	}
	if env.Player != "Ravi" {
		t.Errorf("env player = %q, want Ravi", env.Player)
	}
}

func TestEmptyStoreOpensNamePrompt(t *testing.T) {
	env := &screen.Env{KV: store.NewMemory()}
	w := New(env, func() screen.Screen { return &stubScreen{} })
	w.Update(readName(env.KV)())
	if w.name != "" {
		t.Fatalf("name = %q, want empty before login", w.name)
	}

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if !w.asking {
		t.Fatal("first launch should ask for a name")
	}
	if w.transitioned {
		t.Error("should not leave the welcome screen before a name is entered")
	}
	if cmd != nil {
		if _, ok := cmd().(router.ReplaceScreenMsg); ok {
			t.Error("keypress should open the prompt, not replace the screen")
		}
	}
	if strings.Contains(w.View(80, 24), "Welcome back") {
		t.Error("a first-time player should not be welcomed back")
	}
}

func TestKeysIgnoredUntilNameRead(t *testing.T) {
	env := &screen.Env{KV: store.NewMemory()}
	w := New(env, func() screen.Screen { return &stubScreen{} })
	if _, cmd := w.Update(tea.KeyPressMsg{Code: ' '}); cmd != nil {
		t.Error("no transition before the stored name is known")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome(t, "Asha")
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
