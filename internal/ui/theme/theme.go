package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
)

// Arcade palette, bright on a dark cabinet.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadePink   = lipgloss.Color("#EC4899")
)

// TileColors tint puzzle tiles by their home slot so a solved board reads
// as a gradient.
var TileColors = []color.Color{
	lipgloss.Color("#8B5CF6"), lipgloss.Color("#6366F1"), lipgloss.Color("#3B82F6"),
	lipgloss.Color("#0EA5E9"), lipgloss.Color("#14B8A6"), lipgloss.Color("#22C55E"),
	lipgloss.Color("#84CC16"), lipgloss.Color("#EAB308"), lipgloss.Color("#F97316"),
	lipgloss.Color("#EF4444"), lipgloss.Color("#EC4899"), lipgloss.Color("#D946EF"),
}

// ModeColor is the accent of a game mode, used for its badge.
func ModeColor(m content.Mode) color.Color {
	switch m {
	case content.ModePuzzle:
		return Secondary
	case content.ModeDragDrop:
		return ArcadePink
	case content.ModeBattle:
		return Accent
	default:
		return ArcadeYellow
	}
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Celebrate = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)
)
