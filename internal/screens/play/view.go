package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if s.machine == nil {
		if s.loading && s.loadErr == nil {
			return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
				theme.Hint.Render("Loading levels..."))
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(s.unavailableText()))
	}

	snap := s.snap
	var b strings.Builder

	b.WriteString(center(theme.Title.Render(snap.Title)))
	b.WriteString("\n")
	info := fmt.Sprintf("Level %d of %d · %s", snap.Level, snap.Levels, formatElapsed(snap))
	b.WriteString(center(components.ModeBadge(snap.Mode) + "  " + theme.Subtitle.Render(info)))
	b.WriteString("\n")
	if snap.Desc != "" {
		b.WriteString(center(theme.Hint.Render(snap.Desc)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if snap.State == session.StateUnavailable {
		b.WriteString(center(theme.Hint.Render(s.unavailableText())))
		return b.String()
	}

	var body string
	switch snap.Mode {
	case content.ModePuzzle:
		body = s.puzzleView()
	case content.ModeDragDrop:
		body = s.dragDropView()
	default:
		body = s.questionView()
	}
	b.WriteString(center(body))
	b.WriteString("\n")

	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint.Render(s.note)))
		b.WriteString("\n")
	}

	if snap.Celebrate {
		b.WriteString("\n")
		b.WriteString(center(theme.Celebrate.Render(fmt.Sprintf("🎉 Level complete! +%d XP 🎉", snap.LevelXP))))
		b.WriteString("\n")
	}
	if snap.NoMoreLevels {
		b.WriteString(center(theme.Celebrate.Render("You finished every level here! 🏆")))
		b.WriteString("\n")
	}
	for _, a := range snap.NewBadges {
		line := fmt.Sprintf("%s New badge: %s %s", a.Type.Icon(), a.Rarity.DisplayName(), a.Type.DisplayName())
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadePink).Bold(true).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func formatElapsed(snap session.Snapshot) string {
	secs := int(snap.Elapsed.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// puzzleView draws the board as numbered tiles coloured by their home slot.
func (s *PlayScreen) puzzleView() string {
	snap := s.snap
	g := snap.Grid
	if g == 0 {
		return ""
	}

	rows := make([]string, 0, g)
	for r := 0; r < g; r++ {
		cells := make([]string, 0, g)
		for c := 0; c < g; c++ {
			slot := r*g + c
			tile := snap.Tiles[slot]
			color := theme.TileColors[tile.Canonical%len(theme.TileColors)]
			style := lipgloss.NewStyle().
				Width(6).
				Align(lipgloss.Center).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Background(color).
				Foreground(theme.BgDark).
				Bold(true)
			switch {
			case slot == s.picked:
				style = style.BorderForeground(theme.ArcadeYellow)
			case slot == s.cursor && !snap.Solved:
				style = style.BorderForeground(theme.Text)
			}
			cells = append(cells, style.Render(fmt.Sprintf("%d", tile.Canonical+1)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	board := lipgloss.JoinVertical(lipgloss.Left, rows...)
	footer := theme.Hint.Render(fmt.Sprintf("Moves: %d   Put the numbers in order!", snap.Moves))
	return lipgloss.JoinVertical(lipgloss.Center, board, "", footer)
}

func (s *PlayScreen) dragDropView() string {
	snap := s.snap

	var items []string
	for i, it := range snap.Items {
		prefix := "  "
		style := theme.Unselected
		if i == s.item {
			prefix = "▸ "
			style = theme.Selected
		}
		if it.Done {
			style = lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true)
		}
		items = append(items, style.Render(prefix+it.Label))
	}

	var targets []string
	for j, t := range snap.Targets {
		slot := "   ?"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if t.Placed != "" {
			slot = "← " + t.Placed
			if t.Correct {
				style = theme.Correct
			} else {
				style = theme.Incorrect
			}
		}
		targets = append(targets, style.Render(fmt.Sprintf("%d. %s %s", j+1, t.Label, slot)))
	}

	left := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	right := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, targets...))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (s *PlayScreen) questionView() string {
	snap := s.snap
	if snap.Question == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", snap.QuestionIndex+1, snap.QuestionCount)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(snap.Question.Question))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	if fb := snap.Feedback; fb != nil {
		b.WriteString("\n")
		if fb.Correct {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ The answer is " + fb.Answer))
		}
		b.WriteString("\n")
		if ex := fb.Explanation; ex.Short != "" {
			b.WriteString(theme.Hint.Render(ex.Short))
			b.WriteString("\n")
			if !fb.Correct && ex.WhyWrong != "" {
				b.WriteString(theme.Hint.Render(ex.WhyWrong))
				b.WriteString("\n")
			}
		}
	}

	if s.typing {
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(56).Render(b.String())
}
