package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

const arcadeTitleFull = `╔═╗╦  ╔═╗╦ ╦  ╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗
╠═╝║  ╠═╣╚╦╝  ╠═╣╠╦╝║  ╠═╣ ║║║╣ 
╩  ╩═╝╩ ╩ ╩   ╩ ╩╩╚═╚═╝╩ ╩═╩╝╚═╝`

const arcadeTitleCompact = "P · L · A · Y · A · R · C · A · D · E"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows XP, player level and streak in a double-bordered box.
func renderStatsBar(st progress.State, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	level := progress.PlayerLevel(st.XP)
	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			xpStyle.Render(fmt.Sprintf("★%d", st.XP)),
			levelStyle.Render(fmt.Sprintf("L%d", level)),
			streakStyle.Render(fmt.Sprintf("🔥%d", st.Streak)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			xpStyle.Render(fmt.Sprintf("★ %d XP", st.XP)),
			levelStyle.Render(fmt.Sprintf("LEVEL %d", level)),
			streakStyle.Render(fmt.Sprintf("🔥 %d STREAK", st.Streak)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderWeekly draws the weekly goal bar with its encouragement line.
func renderWeekly(st progress.State, cw int) string {
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Week %d/%d", st.WeeklyXP, st.WeeklyTarget),
		Percent: st.WeeklyPercent(),
		Width:   cw - 4,
	}
	msg := theme.Hint.Render(st.WeeklyGoal().Message())
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(bar.View() + "\n" + msg)
}

func renderPickers(grade, subject components.Picker, focus int, cw int) string {
	rows := []string{grade.View(focus == focusGrade), subject.View(focus == focusSubject)}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderArcadeMenu(m components.Menu, active bool, cw int, compact bool) string {
	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		state := components.ButtonIdle
		switch {
		case item.Disabled:
			state = components.ButtonDisabled
		case active && i == m.Selected:
			state = components.ButtonFocused
		}
		buttons = append(buttons, components.ArcadeButton(item.Label, state, buttonWidth, compact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
