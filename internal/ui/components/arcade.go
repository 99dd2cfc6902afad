package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

const (
	maxContentWidth = 60
	minContentWidth = 20
)

// ContentWidth is the shared inner width of the cabinet sections, so the
// boxes line up. It leaves room for the cabinet border and padding.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// CabinetFrame draws the double-bordered arcade cabinet around content,
// centred in width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ButtonState is how a menu button is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonFocused
	ButtonDisabled
)

// ArcadeButton renders one menu button. Compact buttons are a single line
// without a border.
func ArcadeButton(label string, state ButtonState, width int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	text := label
	switch state {
	case ButtonFocused:
		style = style.Bold(true).Foreground(theme.BgDark).Background(theme.ArcadeYellow)
		text = "▸ " + label
	case ButtonDisabled:
		style = style.Foreground(theme.TextDim).Faint(true)
	}

	if compact {
		return style.Render(" " + text + " ")
	}

	border := theme.Border
	if state == ButtonFocused {
		border = theme.ArcadeYellow
	}
	return style.
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(text)
}

// ModeBadge is the coloured pill naming a level's game mode.
func ModeBadge(mode content.Mode) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ModeColor(mode)).
		Padding(0, 1).
		Render(mode.DisplayName())
}
