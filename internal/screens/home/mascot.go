package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: weekly goal reached
	MascotAlert                            // Orange: nothing played this week
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ▲●■ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ▲●■ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ▲●■ │
└─────┘`

// MascotFor picks the mascot mood for the player's week.
func MascotFor(st progress.State) MascotVariant {
	switch {
	case st.WeeklyGoal() == progress.GoalCompleted:
		return MascotCelebrating
	case st.WeeklyXP == 0:
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
