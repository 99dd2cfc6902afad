// Package lessons lists a grade's video and music lessons. The terminal
// cannot play them, so the screen shows where each one lives.
package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

var kinds = []content.LessonKind{content.LessonsVideo, content.LessonsMusic}

type loadedMsg struct {
	kind    content.LessonKind
	lessons []content.Lesson
	err     error
}

type LessonsScreen struct {
	env      *screen.Env
	grade    content.Grade
	kind     int
	lessons  []content.Lesson
	selected int
	loaded   bool
	err      error
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

func New(env *screen.Env, grade content.Grade) *LessonsScreen {
	return &LessonsScreen{env: env, grade: grade}
}

func (s *LessonsScreen) Init() tea.Cmd {
	src, grade, kind := s.env.Lessons, s.grade, kinds[s.kind]
	s.loaded = false
	return func() tea.Msg {
		if src == nil {
			return loadedMsg{kind: kind, err: content.ErrNotFound}
		}
		lessons, err := src.Lessons(context.Background(), grade, kind)
		return loadedMsg{kind: kind, lessons: lessons, err: err}
	}
}

func (s *LessonsScreen) Title() string {
	return s.grade.DisplayName() + " Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Video/Music"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.kind != kinds[s.kind] {
			return s, nil
		}
		s.lessons, s.err = msg.lessons, msg.err
		s.selected = 0
		s.loaded = true
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.kind = (s.kind + 1) % len(kinds)
			return s, s.Init()
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.lessons)-1, 0))
		}
	}
	return s, nil
}

func kindTitle(k content.LessonKind) string {
	if k == content.LessonsMusic {
		return "🎵 Music"
	}
	return "🎬 Videos"
}

func (s *LessonsScreen) View(width, height int) string {
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	var tabs []string
	for i, k := range kinds {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.kind {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(kindTitle(k)))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(center(theme.Hint.Render("Loading lessons...")))
		return b.String()
	case errors.Is(s.err, content.ErrNotFound), s.err == nil && len(s.lessons) == 0:
		b.WriteString(center(theme.Hint.Render("No lessons for this grade yet.")))
		return b.String()
	case s.err != nil:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Render("Could not read the lesson list.")))
		return b.String()
	}

	for i, l := range s.lessons {
		prefix, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix, style = "▸ ", theme.Selected
		}
		b.WriteString(center(style.Render(fmt.Sprintf("%s%-40s", prefix, l.Title))))
		b.WriteString("\n")
	}

	if s.selected < len(s.lessons) {
		l := s.lessons[s.selected]
		detail := []string{theme.Body.Render(l.Desc), theme.Hint.Render(l.Src)}
		if l.Lyrics != "" {
			detail = append(detail, "", theme.Body.Render(l.Lyrics))
		}
		b.WriteString("\n")
		b.WriteString(center(theme.Card.Width(min(width-4, 64)).Render(strings.Join(detail, "\n"))))
	}
	return b.String()
}
