package play

import (
	"time"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/session"
)

// loadedMsg carries a level set and a started session for one selection.
type loadedMsg struct {
	sel     content.Selection
	machine *session.Machine
	ledger  *progress.Ledger
	err     error
}

// tickMsg refreshes the snapshot so timers and auto-advance show up.
type tickMsg time.Time

// changedMsg follows an intent that ran off the update loop.
type changedMsg struct{}
