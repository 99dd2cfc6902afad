package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/ui/theme"
)

// Picker cycles through a fixed list of values, e.g. grades.
type Picker struct {
	Label  string
	Values []string
	Index  int
}

// Next moves by dir, wrapping around.
func (p *Picker) Next(dir int) {
	n := len(p.Values)
	if n == 0 {
		return
	}
	p.Index = ((p.Index+dir)%n + n) % n
}

// Value returns the current value.
func (p Picker) Value() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[p.Index]
}

// SetValue moves to v if present.
func (p *Picker) SetValue(v string) {
	for i, x := range p.Values {
		if x == v {
			p.Index = i
			return
		}
	}
}

func (p Picker) View(active bool) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label + "  ")
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if active {
		style = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	}
	return label + style.Render("◂ "+p.Value()+" ▸")
}
