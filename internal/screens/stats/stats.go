// Package stats is the "My Progress" screen.
package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/history"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

type loadedMsg struct {
	state   progress.State
	gradeXP int
	name    string
}

// StatsScreen shows lifetime and weekly progress plus per-subject quiz
// results.
type StatsScreen struct {
	env    *screen.Env
	grade  content.Grade
	state  progress.State
	xp     int // earned in grade
	name   string
	loaded bool
}

var (
	_ screen.Screen          = (*StatsScreen)(nil)
	_ screen.KeyHintProvider = (*StatsScreen)(nil)
)

func New(env *screen.Env, grade content.Grade) *StatsScreen {
	return &StatsScreen{env: env, grade: grade}
}

func (s *StatsScreen) Init() tea.Cmd {
	env, grade := s.env, s.grade
	return func() tea.Msg {
		ctx := context.Background()
		ledger := progress.Load(ctx, env.KV, grade, env.LedgerOptions()...)
		return loadedMsg{
			state:   ledger.State(),
			gradeXP: ledger.GradeXP(),
			name:    progress.StudentName(ctx, env.KV),
		}
	}
}

func (s *StatsScreen) Title() string { return "My Progress" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "H", Description: "History"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.state, s.xp, s.name = msg.state, msg.gradeXP, msg.name
		s.loaded = true
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.env.Journal)}
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	st := s.state
	cw := components.ContentWidth(width)

	var b strings.Builder
	who := "Your"
	if s.name != "" {
		who = s.name + "'s"
	}
	b.WriteString(theme.Title.Width(cw).Render(who + " progress"))
	b.WriteString("\n\n")

	level := progress.PlayerLevel(st.XP)
	rows := [][2]string{
		{"Total XP", fmt.Sprintf("%d", st.XP)},
		{"Player level", fmt.Sprintf("%d (next at %d XP)", level, progress.NextPlayerLevelAt(st.XP))},
		{s.grade.DisplayName() + " XP", fmt.Sprintf("%d", s.xp)},
		{"Quizzes finished", fmt.Sprintf("%d", st.Quizzes)},
		{"Correct answers", fmt.Sprintf("%d", st.Correct)},
		{"Streak", fmt.Sprintf("%d (best %d)", st.Streak, st.BestStreak)},
	}
	for _, r := range rows {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(20).Render(r[0]))
		b.WriteString(theme.Body.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(components.ProgressBar{
		Label:   fmt.Sprintf("This week %d/%d", st.WeeklyXP, st.WeeklyTarget),
		Percent: st.WeeklyPercent(),
		Width:   cw,
	}.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(st.WeeklyGoal().Message()))
	b.WriteString("\n\n")

	if len(st.SubjectStats) > 0 {
		b.WriteString(theme.Subtitle.Render("Best quiz scores"))
		b.WriteString("\n")
		subjects := make([]string, 0, len(st.SubjectStats))
		for subj := range st.SubjectStats {
			subjects = append(subjects, subj)
		}
		slices.Sort(subjects)
		for _, subj := range subjects {
			b.WriteString(components.ProgressBar{
				Label:   fmt.Sprintf("%-10s", content.SubjectTitle(subj)),
				Percent: st.SubjectStats[subj],
				Width:   cw,
			}.View())
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
