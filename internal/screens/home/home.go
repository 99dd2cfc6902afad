// Package home is the arcade's main menu: grade and subject pickers, the
// player's XP and weekly goal, and the way into every other screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/badgeshelf"
	"github.com/abhisek/playarcade/internal/screens/leaderboard"
	"github.com/abhisek/playarcade/internal/screens/lessons"
	"github.com/abhisek/playarcade/internal/screens/play"
	"github.com/abhisek/playarcade/internal/screens/stats"
	"github.com/abhisek/playarcade/internal/screens/tutorchat"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/layout"
)

const (
	focusGrade = iota
	focusSubject
	focusMenu
)

// stateMsg carries the progress read on (re)entering the screen.
type stateMsg struct {
	state progress.State
	name  string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env *screen.Env

	grades   []content.Grade
	subjects []string
	grade    components.Picker
	subject  components.Picker
	menu     components.Menu
	focus    int

	state    progress.State
	name     string
	restored bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.StatusProvider  = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, grades: content.Grades(), focus: focusMenu}

	labels := make([]string, len(h.grades))
	for i, g := range h.grades {
		labels[i] = g.DisplayName()
	}
	h.grade = components.Picker{Label: "GRADE  ", Values: labels}
	h.setSubjects()

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY", Action: h.push(func() screen.Screen {
			return play.New(env, h.currentGrade(), h.currentSubject(), 1)
		})},
		{Label: "LESSONS", Disabled: env.Lessons == nil, Action: h.push(func() screen.Screen {
			return lessons.New(env, h.currentGrade())
		})},
		{Label: "MY PROGRESS", Action: h.push(func() screen.Screen {
			return stats.New(env, h.currentGrade())
		})},
		{Label: "BADGES", Action: h.push(func() screen.Screen {
			return badgeshelf.New(env)
		})},
		{Label: "LEADERBOARD", Disabled: env.Leaderboard == nil, Action: h.push(func() screen.Screen {
			return leaderboard.New(env)
		})},
		{Label: "TUTOR", Disabled: env.Tutor == nil, Action: h.push(func() screen.Screen {
			return tutorchat.New(env)
		})},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) currentGrade() content.Grade { return h.grades[h.grade.Index] }

func (h *HomeScreen) currentSubject() string {
	if len(h.subjects) == 0 {
		return ""
	}
	return h.subjects[h.subject.Index]
}

// setSubjects refills the subject picker for the current grade, keeping
// the subject when the new grade has it.
func (h *HomeScreen) setSubjects() {
	prev := h.currentSubject()
	h.subjects = h.env.SubjectsFor(h.currentGrade())
	labels := make([]string, len(h.subjects))
	for i, s := range h.subjects {
		labels[i] = content.SubjectTitle(s)
	}
	h.subject = components.Picker{Label: "SUBJECT", Values: labels}
	h.selectSubject(prev)
}

func (h *HomeScreen) selectSubject(subject string) {
	for i, s := range h.subjects {
		if s == subject {
			h.subject.Index = i
		}
	}
}

// Init refreshes the player's progress every time home becomes active.
func (h *HomeScreen) Init() tea.Cmd {
	env, grade := h.env, h.currentGrade()
	return func() tea.Msg {
		ctx := context.Background()
		ledger := progress.Load(ctx, env.KV, grade, env.LedgerOptions()...)
		return stateMsg{state: ledger.State(), name: progress.StudentName(ctx, env.KV)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		h.state, h.name = msg.state, msg.name
		if !h.restored {
			h.restored = true
			h.restore(msg.state)
		}
		return h, nil
	case tea.KeyPressMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

// restore reopens the grade and subject played last.
func (h *HomeScreen) restore(st progress.State) {
	if g, err := content.ParseGrade(st.LastGrade); err == nil {
		for i, x := range h.grades {
			if x == g {
				h.grade.Index = i
			}
		}
		h.setSubjects()
	}
	h.selectSubject(st.LastSubject)
}

func (h *HomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		h.focus = (h.focus + 1) % 3
		return h, nil
	case "shift+tab":
		h.focus = (h.focus + 2) % 3
		return h, nil
	case "g":
		h.grade.Next(1)
		h.setSubjects()
		return h, h.Init()
	case "s":
		h.subject.Next(1)
		return h, nil
	}

	switch h.focus {
	case focusGrade, focusSubject:
		return h.pickerKey(msg.String())
	}

	if msg.String() == "up" && h.menu.Selected == 0 {
		h.focus = focusSubject
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) pickerKey(key string) (screen.Screen, tea.Cmd) {
	dir := 0
	switch key {
	case "left", "h":
		dir = -1
	case "right", "l":
		dir = 1
	case "up", "k":
		h.focus = max(h.focus-1, focusGrade)
	case "down", "j", "enter":
		h.focus++
	}
	if dir == 0 {
		return h, nil
	}
	if h.focus == focusGrade {
		h.grade.Next(dir)
		h.setSubjects()
		return h, h.Init()
	}
	h.subject.Next(dir)
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(MascotFor(h.state), cw))
	}
	if h.name != "" {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render("Hi, "+h.name+"!"))
	}
	sections = append(sections,
		renderStatsBar(h.state, cw, compact),
		renderWeekly(h.state, cw),
		renderPickers(h.grade, h.subject, h.focus, cw),
		renderArcadeMenu(h.menu, h.focus == focusMenu, cw, compact),
	)

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() string {
	return layout.Status(h.state.XP, h.state.Streak)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "G/S", Description: "Grade/Subject"},
		{Key: "Enter", Description: "Select"},
	}
}
