package content

import "sync"

// Selection identifies one load request. Its token changes every time the
// user picks a different grade, subject or level.
type Selection struct {
	Grade   Grade
	Subject string
	Token   uint64
}

// SelectionGuard hands out selections and tells late results apart from
// the current one.
type SelectionGuard struct {
	mu      sync.Mutex
	current Selection
}

// Select records a new current selection and returns it.
func (g *SelectionGuard) Select(grade Grade, subject string) Selection {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = Selection{Grade: grade, Subject: subject, Token: g.current.Token + 1}
	return g.current
}

// Current reports whether sel is still the latest selection.
func (g *SelectionGuard) Current(sel Selection) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return sel == g.current
}
