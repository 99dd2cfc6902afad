package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent int // 0-100
	Width   int
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)
	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", pct)))
	return b.String()
}
