// Package tutorchat is the voice tutor's chat screen. Typed text stands
// in for a speech transcript.
package tutorchat

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/tutor"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/layout"
	"github.com/abhisek/playarcade/internal/ui/theme"
)

type line struct {
	fromUser bool
	text     string
	lang     string
}

type replyMsg struct {
	reply tutor.Reply
	err   error
}

// ChatScreen shows the conversation with the tutor.
type ChatScreen struct {
	env     *screen.Env
	input   components.TextInput
	lines   []line
	waiting bool

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
	_ screen.Closer          = (*ChatScreen)(nil)
)

func New(env *screen.Env) *ChatScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatScreen{
		env:    env,
		input:  components.NewTextInput("Ask me anything...", 200),
		lines:  []line{{text: tutor.Greeting}},
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *ChatScreen) Init() tea.Cmd { return s.input.Init() }

func (s *ChatScreen) Title() string { return "Voice Tutor" }

// Close abandons a reply still in flight.
func (s *ChatScreen) Close() { s.cancel() }

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Ctrl+R", Description: "New chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		switch {
		case errors.Is(msg.err, context.Canceled):
		case msg.err != nil:
			s.lines = append(s.lines, line{text: "Oops, I could not answer that. Try again!"})
		default:
			l := line{text: msg.reply.Text}
			if msg.reply.Lang != tutor.English {
				l.lang = tutor.LanguageName(msg.reply.Lang)
			}
			s.lines = append(s.lines, l)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "ctrl+r":
			s.env.Tutor.Reset()
			s.lines = []line{{text: tutor.Greeting}}
			return s, nil
		case "enter":
			return s, s.ask()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) ask() tea.Cmd {
	q := strings.TrimSpace(s.input.Value())
	if q == "" || s.waiting {
		return nil
	}
	s.input.Reset()
	s.lines = append(s.lines, line{fromUser: true, text: q})
	s.waiting = true

	t, ctx := s.env.Tutor, s.ctx
	return func() tea.Msg {
		reply, err := t.Ask(ctx, q)
		return replyMsg{reply: reply, err: err}
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := min(max(width-8, 20), 80)
	bubble := lipgloss.NewStyle().Width(cw - 10).Padding(0, 1)

	var rendered []string
	for _, l := range s.lines {
		if l.fromUser {
			rendered = append(rendered, lipgloss.PlaceHorizontal(cw, lipgloss.Right,
				bubble.Foreground(theme.BgDark).Background(theme.Secondary).Render(l.text)))
			continue
		}
		text := "🤖 " + l.text
		if l.lang != "" {
			text += "\n" + theme.Hint.Render("("+l.lang+")")
		}
		rendered = append(rendered, bubble.Foreground(theme.Text).Background(theme.BgCard).Render(text))
	}
	if s.waiting {
		rendered = append(rendered, theme.Hint.Render("🤖 thinking..."))
	}

	// Keep the newest lines that fit above the input.
	chat := strings.Join(rendered, "\n\n")
	if rows := strings.Split(chat, "\n"); len(rows) > height-4 && height > 4 {
		chat = strings.Join(rows[len(rows)-(height-4):], "\n")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, chat, "", s.input.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Bottom, body)
}
