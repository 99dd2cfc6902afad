package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playarcade/internal/content"
)

func TestMenuSkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { called = true; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("cursor moved past the end: %d", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected action on enter")
	}
}

func TestPickerWraps(t *testing.T) {
	p := Picker{Values: []string{"grade1", "grade2", "grade3"}}
	p.Next(-1)
	if p.Value() != "grade3" {
		t.Errorf("Value = %q, want grade3", p.Value())
	}
	p.Next(1)
	if p.Value() != "grade1" {
		t.Errorf("Value = %q, want grade1", p.Value())
	}
	p.SetValue("grade2")
	if p.Index != 1 {
		t.Errorf("Index = %d, want 1", p.Index)
	}
	var empty Picker
	empty.Next(1)
	if empty.Value() != "" {
		t.Error("empty picker should have no value")
	}
}

func TestOptionList(t *testing.T) {
	o := OptionList{Options: []string{"3", "4", "5"}}
	o.Move(5)
	if cur, _ := o.Current(); cur != "5" {
		t.Errorf("Current = %q, want 5", cur)
	}
	o.Move(-9)
	if o.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", o.Cursor)
	}
	view := o.View()
	for _, want := range []string{"A)", "B)", "C)", "▸"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	o.Chosen, o.Answer = "3", "4"
	if strings.Contains(o.View(), "▸") {
		t.Error("cursor should be hidden after submission")
	}
}

func TestProgressBarClamps(t *testing.T) {
	for _, pct := range []int{-10, 0, 55, 100, 250} {
		v := ProgressBar{Label: "Week", Percent: pct, Width: 30}.View()
		if v == "" {
			t.Errorf("empty bar for %d%%", pct)
		}
	}
	if !strings.Contains(ProgressBar{Percent: 250, Width: 20}.View(), "100%") {
		t.Error("expected percent clamped to 100")
	}
}

func TestContentWidthClamps(t *testing.T) {
	cases := map[int]int{10: 20, 50: 44, 200: 60}
	for frame, want := range cases {
		if got := ContentWidth(frame); got != want {
			t.Errorf("ContentWidth(%d) = %d, want %d", frame, got, want)
		}
	}
}

func TestArcadeButtonStates(t *testing.T) {
	if got := ArcadeButton("PLAY", ButtonFocused, 22, false); !strings.Contains(got, "▸ PLAY") {
		t.Errorf("focused button should carry the cursor:\n%s", got)
	}
	if got := ArcadeButton("PLAY", ButtonIdle, 22, false); strings.Contains(got, "▸") {
		t.Errorf("idle button should not carry the cursor:\n%s", got)
	}
	if got := ArcadeButton("TUTOR", ButtonDisabled, 22, true); strings.Count(got, "\n") != 0 {
		t.Errorf("compact buttons are one line:\n%s", got)
	}
}

func TestModeBadge(t *testing.T) {
	if got := ModeBadge(content.ModeDragDrop); !strings.Contains(got, content.ModeDragDrop.DisplayName()) {
		t.Errorf("badge should name the mode: %q", got)
	}
}
