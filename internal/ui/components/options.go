package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/evaluate"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

// OptionList renders the answer choices of a quiz or battle question.
// Once Answer is set the correct option is shown in green and a wrong pick
// in red.
type OptionList struct {
	Options []string
	Cursor  int

	// Chosen and Answer are set after submission.
	Chosen string
	Answer string
}

func (o OptionList) submitted() bool { return o.Chosen != "" }

// View renders one option per line, lettered A, B, C...
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.submitted() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, evaluate.ChoiceLetter(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case o.submitted() && opt == o.Answer:
			style = theme.Correct
		case o.submitted() && opt == o.Chosen:
			style = theme.Incorrect
		case o.submitted():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Move shifts the cursor by delta, clamped to the list.
func (o *OptionList) Move(delta int) {
	o.Cursor = min(max(o.Cursor+delta, 0), max(len(o.Options)-1, 0))
}

// Current returns the option under the cursor.
func (o OptionList) Current() (string, bool) {
	if o.Cursor < 0 || o.Cursor >= len(o.Options) {
		return "", false
	}
	return o.Options[o.Cursor], true
}
