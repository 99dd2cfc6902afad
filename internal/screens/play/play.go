// Package play is the game screen. It drives a session.Machine with key
// presses and renders its snapshots.
package play

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/router"
	"github.com/abhisek/playarcade/internal/screen"
	"github.com/abhisek/playarcade/internal/screens/summary"
	"github.com/abhisek/playarcade/internal/session"
	"github.com/abhisek/playarcade/internal/ui/components"
	"github.com/abhisek/playarcade/internal/ui/layout"
)

const refreshEvery = 200 * time.Millisecond

// PlayScreen plays one grade and subject.
type PlayScreen struct {
	env     *screen.Env
	grade   content.Grade
	subject string
	level   int

	guard   *content.SelectionGuard
	machine *session.Machine
	ledger  *progress.Ledger
	snap    session.Snapshot
	loadErr error
	loading bool
	closed  bool

	// puzzle
	cursor int
	picked int

	// drag-drop
	item int

	// quiz and battle
	options  components.OptionList
	question int
	typing   bool
	input    components.TextInput

	note string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.StatusProvider  = (*PlayScreen)(nil)
	_ screen.Closer          = (*PlayScreen)(nil)
)

// New creates a play screen starting at the 1-based level.
func New(env *screen.Env, grade content.Grade, subject string, level int) *PlayScreen {
	return &PlayScreen{
		env:     env,
		grade:   grade,
		subject: subject,
		level:   level,
		guard:   &content.SelectionGuard{},
		picked:  -1,
		input:   components.NewTextInput("say or type your answer", 60),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), tick())
}

func (s *PlayScreen) Title() string {
	return fmt.Sprintf("%s · %s", s.grade.DisplayName(), content.SubjectTitle(s.subject))
}

func (s *PlayScreen) Status() string {
	return layout.Status(s.snap.XP, s.snap.Streak)
}

// CapturesEscape keeps Esc for cancelling the answer input.
func (s *PlayScreen) CapturesEscape() bool { return s.typing }

// Close stops the running session.
func (s *PlayScreen) Close() {
	s.closed = true
	if s.machine != nil {
		s.machine.Close()
	}
}

// load starts the current selection in the background. A result for an
// older selection is discarded when it arrives.
func (s *PlayScreen) load() tea.Cmd {
	s.loading = true
	sel := s.guard.Select(s.grade, s.subject)
	env, level := s.env, s.level
	return func() tea.Msg {
		ctx := context.Background()
		set, err := env.Content.Load(ctx, sel.Grade, sel.Subject)
		if err != nil {
			return loadedMsg{sel: sel, err: err}
		}
		ledger := progress.Load(ctx, env.KV, sel.Grade, env.LedgerOptions()...)
		m := session.New(ledger, sessionOptions(env)...)
		err = m.Load(ctx, set, level)
		return loadedMsg{sel: sel, machine: m, ledger: ledger, err: err}
	}
}

func sessionOptions(env *screen.Env) []session.Option {
	opts := []session.Option{session.WithMetrics(env.Metrics)}
	if env.Logger != nil {
		opts = append(opts, session.WithLogger(env.Logger))
	}
	if env.Badges != nil {
		opts = append(opts, session.WithBadges(env.Badges))
	}
	if env.Leaderboard != nil {
		opts = append(opts, session.WithLeaderboard(env.Leaderboard, env.Player))
	}
	if env.Boards != nil {
		opts = append(opts, session.WithBoards(env.Boards))
	}
	if env.BattleWeight > 0 && env.QuizWeight > 0 {
		opts = append(opts, session.WithWeights(env.BattleWeight, env.QuizWeight))
	}
	return append(opts, env.Session...)
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// run executes a session intent off the update loop; level changes may
// fetch a picture.
func (s *PlayScreen) run(f func(ctx context.Context, m *session.Machine)) tea.Cmd {
	m := s.machine
	if m == nil {
		return nil
	}
	return func() tea.Msg {
		f(context.Background(), m)
		return changedMsg{}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)
	case tickMsg:
		if s.closed {
			return s, nil
		}
		s.refresh()
		return s, tick()
	case changedMsg:
		s.refresh()
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	if !s.guard.Current(msg.sel) || s.closed {
		if msg.machine != nil {
			msg.machine.Close()
		}
		return s, nil
	}
	s.loading = false
	if s.machine != nil {
		s.machine.Close()
	}
	s.machine, s.ledger = msg.machine, msg.ledger
	s.loadErr = msg.err
	if msg.err != nil && s.env.Logger != nil {
		s.env.Logger.Warn("level load failed",
			zap.String("grade", string(msg.sel.Grade)),
			zap.String("subject", msg.sel.Subject),
			zap.Error(msg.err),
		)
	}
	s.resetCursors()
	s.refresh()
	return s, nil
}

// refresh copies the machine's snapshot and resets per-unit cursors when
// the level or question moved on.
func (s *PlayScreen) refresh() {
	if s.machine == nil {
		return
	}
	prev := s.snap
	s.snap = s.machine.Snapshot()
	if prev.SessionID != s.snap.SessionID {
		s.resetCursors()
	}
	if prev.SessionID != s.snap.SessionID || prev.QuestionIndex != s.snap.QuestionIndex {
		s.options = components.OptionList{Options: s.snap.Options}
		s.question = s.snap.QuestionIndex
	}
	if s.snap.Feedback != nil {
		s.options.Chosen = s.snap.Feedback.Selected
		s.options.Answer = s.snap.Feedback.Answer
	} else {
		s.options.Chosen, s.options.Answer = "", ""
	}
}

func (s *PlayScreen) resetCursors() {
	s.cursor, s.picked, s.item = 0, -1, 0
	s.typing = false
	s.note = ""
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.typing {
		return s.handleTyping(msg)
	}

	key := msg.String()
	switch key {
	case "q":
		return s, s.finish()
	case "s":
		return s, s.cycleSubject()
	case "g":
		return s, s.cycleGrade()
	}
	if s.machine == nil {
		return s, nil
	}

	switch key {
	case "n":
		return s, s.run(func(ctx context.Context, m *session.Machine) { m.Next(ctx) })
	case "p":
		return s, s.run(func(ctx context.Context, m *session.Machine) { m.Prev(ctx) })
	}
	if s.snap.Locked || s.snap.Solved {
		if key == "enter" || key == "space" {
			return s, s.run(func(ctx context.Context, m *session.Machine) { m.Advance(ctx) })
		}
		return s, nil
	}

	switch s.snap.Mode {
	case content.ModePuzzle:
		s.puzzleKey(key)
	case content.ModeDragDrop:
		s.dragDropKey(key)
	case content.ModeQuiz, content.ModeBattle:
		return s, s.questionKey(key)
	}
	return s, nil
}

func (s *PlayScreen) puzzleKey(key string) {
	g := s.snap.Grid
	if g == 0 {
		return
	}
	ctx := context.Background()
	row, col := s.cursor/g, s.cursor%g
	switch key {
	case "up", "k":
		row = max(row-1, 0)
	case "down", "j":
		row = min(row+1, g-1)
	case "left", "h":
		col = max(col-1, 0)
	case "right", "l":
		col = min(col+1, g-1)
	case "r":
		s.machine.Reshuffle()
		s.picked = -1
	case "enter", "space":
		switch {
		case s.picked < 0:
			s.picked = s.cursor
		case s.picked == s.cursor:
			s.picked = -1
		default:
			s.machine.SwapTiles(ctx, s.picked, s.cursor)
			s.picked = -1
		}
	}
	s.cursor = row*g + col
	s.refresh()
}

func (s *PlayScreen) dragDropKey(key string) {
	n := len(s.snap.Items)
	switch key {
	case "up", "k":
		s.item = max(s.item-1, 0)
	case "down", "j":
		s.item = min(s.item+1, max(n-1, 0))
	default:
		target, err := strconv.Atoi(key)
		if err != nil || target < 1 || target > len(s.snap.Targets) {
			return
		}
		correct, ok := s.machine.DropItem(context.Background(), s.item, target-1)
		switch {
		case !ok:
			s.note = "That spot is already done!"
		case correct:
			s.note = "Great match! 🎉"
		default:
			s.note = "Not quite, try another spot."
		}
	}
	s.refresh()
}

func (s *PlayScreen) questionKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		s.options.Move(-1)
		return nil
	case "down", "j":
		s.options.Move(1)
		return nil
	case "t":
		s.typing = true
		s.input.Reset()
		return s.input.Init()
	case "enter", "space":
		if opt, ok := s.options.Current(); ok {
			s.machine.SelectOption(context.Background(), opt)
		}
	case "1", "2", "3", "4", "5", "6", "a", "b", "c", "d", "e", "f":
		// Same resolution as a spoken "b" or "2".
		s.machine.SelectSpoken(context.Background(), key)
	default:
		return nil
	}
	s.refresh()
	return nil
}

func (s *PlayScreen) handleTyping(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.typing = false
		return s, nil
	case "enter":
		said := s.input.Value()
		s.typing = false
		if s.machine != nil && !s.machine.SelectSpoken(context.Background(), said) {
			s.note = fmt.Sprintf("I didn't catch %q. Try again!", said)
		}
		s.refresh()
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PlayScreen) cycleSubject() tea.Cmd {
	i := indexOf(content.Subjects, s.subject)
	s.subject = content.Subjects[(i+1)%len(content.Subjects)]
	s.level = 1
	return s.load()
}

func (s *PlayScreen) cycleGrade() tea.Cmd {
	n := s.grade.Number()%content.MaxGrade + 1
	s.grade = content.GradeOf(n)
	s.level = 1
	return s.load()
}

// finish leaves for the summary of the current level.
func (s *PlayScreen) finish() tea.Cmd {
	s.refresh()
	sum := session.BuildSummary(s.snap)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, s.snap.NewBadges)}
	}
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.typing {
		return []layout.KeyHint{{Key: "Enter", Description: "Answer"}, {Key: "Esc", Description: "Cancel"}}
	}
	hints := []layout.KeyHint{}
	switch {
	case s.snap.Solved:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next level"})
	case s.snap.Locked:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	case s.snap.Mode == content.ModePuzzle:
		hints = append(hints,
			layout.KeyHint{Key: "←↑↓→", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Pick/Swap"},
			layout.KeyHint{Key: "R", Description: "Shuffle"},
		)
	case s.snap.Mode == content.ModeDragDrop:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Item"},
			layout.KeyHint{Key: "1-9", Description: "Drop"},
		)
	default:
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "T", Description: "Say it"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "N/P", Description: "Level"},
		layout.KeyHint{Key: "S/G", Description: "Subject/Grade"},
		layout.KeyHint{Key: "Q", Description: "Finish"},
	)
}

// unavailableText explains why nothing can be played.
func (s *PlayScreen) unavailableText() string {
	switch {
	case errors.Is(s.loadErr, content.ErrNotFound):
		return "No levels here yet. Press S to try another subject."
	case errors.Is(s.snap.Err, session.ErrUnsupportedFormat), errors.Is(s.loadErr, session.ErrUnsupportedFormat):
		return "This level has an unsupported format. Press N for the next one."
	case s.loadErr != nil:
		var schemaErr *content.SchemaError
		if errors.As(s.loadErr, &schemaErr) {
			return "This level file could not be read. Ask a grown-up to check it."
		}
		return "Something went wrong loading levels."
	}
	return "No levels available."
}

func indexOf(list []string, v string) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
