// Package history lists recent journal entries: XP awards and solved
// levels.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/store"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Events []store.Event
	Err    error
}

// HistoryScreen displays the newest journal events.
type HistoryScreen struct {
	journal  store.EventRepo
	events   []store.Event
	levels   bool // only solved levels
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil journal shows an empty state.
func New(journal store.EventRepo) *HistoryScreen {
	return &HistoryScreen{journal: journal}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.journal == nil {
		s.loaded = true
		return nil
	}
	journal, opts := s.journal, store.QueryOpts{Limit: pageSize}
	if s.levels {
		opts.Kind = store.KindLevel
	}
	return func() tea.Msg {
		events, err := journal.Query(context.Background(), opts)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "All/Levels"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.selected = 0
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.levels = !s.levels
			return s, s.Init()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Go play a level!")
	}

	var b strings.Builder
	b.WriteString("\n")

	visible := max(height-2, 3)
	start := max(0, s.selected-visible+1)
	end := min(start+visible, len(s.events))
	for i := start; i < end; i++ {
		line := describe(s.events[i])
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.events[i].Kind == store.KindLevel {
			style = style.Foreground(theme.Success)
		}
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")
	}

	return b.String()
}

func describe(e store.Event) string {
	date := e.Timestamp.Format("Jan 02 15:04")
	where := content.SubjectTitle(e.Subject)
	if g, err := content.ParseGrade(e.Grade); err == nil {
		where = strings.TrimSpace(g.DisplayName() + " " + where)
	}

	switch e.Kind {
	case store.KindLevel:
		return fmt.Sprintf("%s  🏁 %-22s %s", date, where, e.Detail)
	case store.KindXP:
		return fmt.Sprintf("%s  ★ +%-3d %-22s %s", date, e.Amount, where, strings.ReplaceAll(e.Detail, "_", " "))
	}
	return fmt.Sprintf("%s  %s %s", date, e.Kind, e.Detail)
}
