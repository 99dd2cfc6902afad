// Package screen defines what a full-window view implements and the shared
// services screens are built from.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/ui/layout"
)

// Screen is one full-window view.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a header status,
// such as the player's XP.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens holding resources, such as a running
// level session. The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// EscapeCapturer is implemented by screens that use Esc themselves while
// reporting true, e.g. to cancel a text prompt.
type EscapeCapturer interface {
	CapturesEscape() bool
}
