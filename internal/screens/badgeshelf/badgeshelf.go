// Package badgeshelf shows the badges on the player's profile.
package badgeshelf

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/summary"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

type badgesLoadedMsg struct {
	Awards []badges.Award
	Err    error
}

// ShelfScreen displays the earned badges, one type per tab.
type ShelfScreen struct {
	env          *screen.Env
	awards       []badges.Award
	selectedType int // index into AllBadgeTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*ShelfScreen)(nil)
var _ screen.KeyHintProvider = (*ShelfScreen)(nil)

// New creates a new ShelfScreen.
func New(env *screen.Env) *ShelfScreen {
	return &ShelfScreen{env: env}
}

func (s *ShelfScreen) Init() tea.Cmd {
	kv := s.env.KV
	return func() tea.Msg {
		profile, err := progress.LoadProfile(context.Background(), kv)
		if err != nil {
			return badgesLoadedMsg{Err: err}
		}
		awards := make([]badges.Award, 0, len(profile.Badges))
		for _, id := range profile.Badges {
			awards = append(awards, badges.Describe(id))
		}
		return badgesLoadedMsg{Awards: awards}
	}
}

func (s *ShelfScreen) Title() string {
	return "Badges"
}

func (s *ShelfScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShelfScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.awards = msg.Awards
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		types := badges.AllBadgeTypes()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *ShelfScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading badges...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nTotal: %d badges\n", len(s.awards))))
	b.WriteString("\n")

	var tabs []string
	for i, t := range badges.AllBadgeTypes() {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.selectedType {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges of this type yet. Keep playing!"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, a := range filtered[start:end] {
		line := fmt.Sprintf("  %-10s %s", a.Rarity.DisplayName(), a.Reason)
		style := lipgloss.NewStyle().Foreground(summary.RarityColor(a.Rarity))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *ShelfScreen) filtered() []badges.Award {
	selected := badges.AllBadgeTypes()[s.selectedType]
	var out []badges.Award
	for _, a := range s.awards {
		if a.Type == selected {
			out = append(out, a)
		}
	}
	return out
}

func (s *ShelfScreen) countByType(t badges.BadgeType) int {
	n := 0
	for _, a := range s.awards {
		if a.Type == t {
			n++
		}
	}
	return n
}
