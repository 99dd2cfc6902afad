// Package welcome is the splash screen. On first launch it also asks for
// the player's name, which is all the login there is.
package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/store"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ ▲●■ │  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

type nameMsg string

// WelcomeScreen shows a splash animation before transitioning to the home
// screen.
type WelcomeScreen struct {
	env          *screen.Env
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool

	name     string
	nameRead bool
	asking   bool
	input    components.TextInput
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory.
func New(env *screen.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
		input:       components.NewTextInput("your name", 24),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

// CapturesEscape keeps Esc inside the name prompt.
func (w *WelcomeScreen) CapturesEscape() bool { return w.asking }

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), readName(w.env.KV))
}

// readName loads the stored name; an empty nameMsg means first launch.
func readName(kv store.KV) tea.Cmd {
	return func() tea.Msg {
		name, _ := progress.LookupStudentName(context.Background(), kv)
		return nameMsg(name)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case nameMsg:
		w.name = string(msg)
		w.nameRead = true
		return w, nil

	case tea.KeyPressMsg:
		if w.asking {
			return w.handleName(msg)
		}
		if !w.nameRead {
			return w, nil
		}
		if w.name == "" {
			w.asking = true
			return w, w.input.Init()
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) handleName(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	name := strings.TrimSpace(w.input.Value())
	if name == "" {
		return w, nil
	}
	if err := progress.SetStudentName(context.Background(), w.env.KV, name); err != nil && w.env.Logger != nil {
		w.env.Logger.Warn("name not saved", zap.Error(err))
	}
	w.name = name
	w.env.Player = name
	w.asking = false
	return w, w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i, pair := range map[int][2]string{0: {s1, s2}, 3: {s2, s1}, 6: {s1, s2}} {
			if i < len(lines) {
				lines[i] = pair[0] + "  " + lines[i] + "  " + pair[1]
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := "Let's play and learn!"
		if w.name != "" {
			tagline = "Welcome back, " + w.name + "!"
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline))
	}

	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	switch {
	case w.asking:
		sections = append(sections, "", "What's your name?", w.input.View(), hint.Render("press enter when done"))
	case w.elapsed >= phase2End:
		sections = append(sections, "", hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
