package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) {
		t.Error("sizes under the minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("the minimum size itself should fit")
	}
}

func TestIsCompact(t *testing.T) {
	if !IsCompact(90, 40) {
		t.Error("narrow areas should be compact")
	}
	if IsCompact(120, 40) {
		t.Error("wide, tall areas should use the full layout")
	}
}

func TestStatus(t *testing.T) {
	if got := Status(42, 3); got != "★ 42 XP   🔥 3" {
		t.Errorf("Status = %q", got)
	}
}

func TestRenderHeaderShowsParts(t *testing.T) {
	out := RenderHeader("Grade 1 · Battle", Status(10, 1), 100)
	for _, want := range []string{"PlayArcade", "Grade 1 · Battle", "★ 10 XP"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFooterDropsDescriptionsWhenNarrow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Pick the highlighted answer"},
		{Key: "T", Description: "Type an answer instead"},
		{Key: "Esc", Description: "Go back to the menu"},
	}
	wide := RenderFooter(hints, 200)
	if !strings.Contains(wide, "Type an answer instead") {
		t.Errorf("wide footer should keep descriptions:\n%s", wide)
	}
	narrow := RenderFooter(hints, 40)
	if strings.Contains(narrow, "Type an answer instead") {
		t.Errorf("narrow footer should drop descriptions:\n%s", narrow)
	}
	if !strings.Contains(narrow, "Enter") {
		t.Error("narrow footer should keep the keys")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter(nil, 80)
	out := RenderFrame(header, "hello", footer, 80, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}
