// Package leaderboard shows the local high-score table.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

type entriesMsg []progress.Entry

type LeaderboardScreen struct {
	env     *screen.Env
	entries []progress.Entry
	loaded  bool
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

func New(env *screen.Env) *LeaderboardScreen {
	return &LeaderboardScreen{env: env}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	board := s.env.Leaderboard
	return func() tea.Msg {
		if board == nil {
			return entriesMsg(nil)
		}
		return entriesMsg(board.Top(context.Background(), progress.LeaderboardSize))
	}
}

func (s *LeaderboardScreen) Title() string { return "Leaderboard" }

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		s.entries = msg
		s.loaded = true
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

var medals = []string{"🥇", "🥈", "🥉"}

func (s *LeaderboardScreen) View(width, height int) string {
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }
	if !s.loaded {
		return center(theme.Hint.Render("\n\nLoading scores..."))
	}
	if len(s.entries) == 0 {
		return center(theme.Hint.Render("\n\nNo scores yet. Solve a level to get on the board!"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%-4s %-16s %6s %7s  %s", "#", "NAME", "SCORE", "XP", "DATE"))))
	b.WriteString("\n")
	for i, e := range s.entries {
		rank := fmt.Sprintf("%d", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Name == s.env.Player {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		line := fmt.Sprintf("%-4s %-16s %6d %7d  %s", rank, truncate(e.Name, 16), e.Score, e.XP, e.Date)
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
