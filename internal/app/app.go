// Package app hosts the Bubble Tea program: the screen router inside the
// header and footer frame.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/home"
	"github.com/abhisek/playarcade/internal/screens/welcome"
	"github.com/abhisek/playarcade/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	boot   []tea.Cmd
	width  int
	height int
}

// NewAppModel creates the root model with stack as the initial screens,
// bottom first. Without screens the app opens on the welcome splash, which
// leads to home.
func NewAppModel(env *screen.Env, stack ...screen.Screen) AppModel {
	var screens []screen.Screen
	for _, s := range stack {
		if s != nil {
			screens = append(screens, s)
		}
	}
	if len(screens) == 0 {
		screens = append(screens, welcome.New(env, func() screen.Screen { return home.New(env) }))
	}

	m := AppModel{router: router.New(screens[0])}
	m.boot = append(m.boot, screens[0].Init())
	for _, s := range screens[1:] {
		m.boot = append(m.boot, m.router.Push(s))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.boot...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and closes every screen when it ends.
func Run(ctx context.Context, env *screen.Env, stack ...screen.Screen) error {
	m := NewAppModel(env, stack...)
	defer m.router.CloseAll()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
