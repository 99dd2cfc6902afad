package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below either of these the screens drop decoration such as the mascot.
	compactWidth  = 100
	compactHeight = 28
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a content area of width x height should use
// the reduced layout.
func IsCompact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// RenderMinSizeMessage asks for a bigger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"🕹  The arcade needs more room!\n\nMake the window at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// Status formats the header status for xp and streak.
func Status(xp, streak int) string {
	return fmt.Sprintf("★ %d XP   🔥 %d", xp, streak)
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws the brand on the left, the screen title centred and
// status on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" 🎮 PlayArcade")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	bw, mw, rw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-bw, 1)
	gapR := max(inner-bw-gapL-mw-rw, 1)

	line := brand + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
	return bar.Width(width).Render(line)
}

// RenderFooter lays out the key hints. When they do not fit the width the
// descriptions are dropped, keeping only the keys.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	full := make([]string, 0, len(hints))
	keys := make([]string, 0, len(hints))
	for _, h := range hints {
		full = append(full, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
		keys = append(keys, keyStyle.Render(h.Key))
	}

	line := "  " + strings.Join(full, "   ")
	if lipgloss.Width(line) > width-4 {
		line = "  " + strings.Join(keys, "  ")
	}
	return bar.Width(width).Render(line)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
