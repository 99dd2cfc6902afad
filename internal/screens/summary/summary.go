// Package summary shows how a finished level went.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

// SummaryScreen displays the level summary.
type SummaryScreen struct {
	summary session.Summary
	badges  []badges.Award
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary, awards []badges.Award) *SummaryScreen {
	return &SummaryScreen{summary: summary, badges: awards}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Level Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, str string) string {
		return style.Width(width).Align(lipgloss.Center).Render(str)
	}

	var b strings.Builder

	title := "Great playing!"
	if sum.Title != "" {
		title = sum.Title + " done!"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	var stats []string
	if sum.Total > 0 {
		stats = append(stats,
			fmt.Sprintf("Questions: %d", sum.Total),
			fmt.Sprintf("Correct: %d", sum.Correct),
			fmt.Sprintf("Accuracy: %.0f%%", sum.Accuracy*100),
		)
	}
	if sum.Moves > 0 {
		stats = append(stats, fmt.Sprintf("Moves: %d", sum.Moves))
	}
	stats = append(stats, fmt.Sprintf("XP earned: %d", sum.XPEarned))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), strings.Join(stats, "        ")))
	b.WriteString("\n\n")

	if len(s.badges) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 60), 0)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, a := range s.badges {
			line := fmt.Sprintf("  %s %s %s: %s",
				a.Type.Icon(),
				a.Rarity.DisplayName(),
				a.Type.DisplayName(),
				a.Reason)
			style := lipgloss.NewStyle().Foreground(RarityColor(a.Rarity))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RarityColor returns the theme color for a badge rarity.
func RarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityRare:
		return theme.Secondary
	case badges.RarityEpic:
		return theme.Primary
	case badges.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}
