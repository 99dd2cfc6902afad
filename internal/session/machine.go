// Package session runs one level at a time: it owns the per-level play
// state for every game mode and turns moves and answers into XP on the
// progress ledger.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/badges"
	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/puzzle"
	"github.com/abhisek/playarcade/internal/shuffle"
)

// ErrUnsupportedFormat is returned by Load for a level whose shape does not
// fit its mode. The session does not start.
var ErrUnsupportedFormat = errors.New("unsupported level format")

// DefaultAdvanceDelay is how long feedback stays up before moving on.
const DefaultAdvanceDelay = 900 * time.Millisecond

// BoardLoader resolves a puzzle picture and lays out its board.
type BoardLoader interface {
	Load(ctx context.Context, ref string, grid int, opts ...puzzle.BuildOption) (*puzzle.Layout, error)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithMetrics records answers and solved levels.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Machine) { m.metrics = mt }
}

// WithBadges checks for new badges after every award.
func WithBadges(s *badges.Service) Option {
	return func(m *Machine) { m.badges = s }
}

// WithLeaderboard records a row for player on every solved level.
func WithLeaderboard(b *progress.Leaderboard, player string) Option {
	return func(m *Machine) {
		m.leaderboard = b
		m.player = player
	}
}

// WithClock replaces the wall clock and its timers.
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithRand sets the randomness used for boards and option order.
func WithRand(src shuffle.Source) Option {
	return func(m *Machine) { m.rnd = src }
}

// WithBoards sets how puzzle pictures are resolved.
func WithBoards(b BoardLoader) Option {
	return func(m *Machine) { m.boards = b }
}

// WithAdvanceDelay sets the auto-advance delay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.delay = d
		}
	}
}

// WithWeights sets the XP paid per correct battle and quiz answer.
func WithWeights(battle, quiz int) Option {
	return func(m *Machine) {
		m.battleWeight = battle
		m.quizWeight = quiz
	}
}

type dragItem struct {
	label string
	want  string // target label it belongs on
}

// Machine is the level session state machine. It is safe for use from the
// view goroutine and its own timer callbacks.
type Machine struct {
	mu sync.Mutex

	ledger      *progress.Ledger
	logger      *zap.Logger
	metrics     *metrics.Metrics
	badges      *badges.Service
	leaderboard *progress.Leaderboard
	player      string
	clock       Clock
	rnd         shuffle.Source
	boards      BoardLoader
	delay       time.Duration

	battleWeight int
	quizWeight   int

	id       string
	set      *content.LevelSet
	index    int
	level    content.Level
	state    State
	err      error
	gen      uint64
	timer    Timer
	started  time.Time
	finished time.Time

	// puzzle
	layout *puzzle.Layout
	moves  int

	// drag-drop
	items   []dragItem
	targets []string
	placed  []int // per target, index into items or -1

	// quiz and battle
	questions []content.Question
	qIndex    int
	selected  string
	feedback  *Feedback
	correct   int

	levelXP   int
	noMore    bool
	newBadges []badges.Award
}

// New creates an idle machine that scores onto ledger.
func New(ledger *progress.Ledger, opts ...Option) *Machine {
	m := &Machine{
		ledger:       ledger,
		logger:       zap.NewNop(),
		clock:        SystemClock,
		rnd:          shuffle.Default,
		delay:        DefaultAdvanceDelay,
		battleWeight: progress.DefaultCorrectWeight,
		quizWeight:   progress.DefaultCorrectWeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.boards == nil {
		m.boards = puzzle.NewResolver(nil, m.logger)
	}
	return m
}

// Clamp maps a requested 1-based level index onto [1,n]. Any index outside
// the range, on either side, goes back to the first level. It returns 0
// when there are no levels.
func Clamp(index, n int) int {
	if n <= 0 {
		return 0
	}
	if index < 1 || index > n {
		return 1
	}
	return index
}

// Load starts the level at index of set. An empty or missing set leaves the
// machine Unavailable. A level with the wrong shape also leaves it
// Unavailable and returns an error wrapping ErrUnsupportedFormat.
func (m *Machine) Load(ctx context.Context, set *content.LevelSet, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = set
	return m.load(ctx, index)
}

// ChangeLevel cancels any pending advance and loads another level of the
// current set. The index is clamped.
func (m *Machine) ChangeLevel(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, index)
}

// Next loads the following level. It reports false when there is none.
func (m *Machine) Next(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set == nil || m.index >= m.set.Len() {
		return false
	}
	_ = m.load(ctx, m.index+1)
	return true
}

// Prev loads the preceding level. It reports false on the first level.
func (m *Machine) Prev(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set == nil || m.index <= 1 {
		return false
	}
	_ = m.load(ctx, m.index-1)
	return true
}

// Advance moves a locked question on to the next one, or a solved level on
// to the next level. It reports whether anything changed.
func (m *Machine) Advance(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advance(ctx)
}

// Close cancels pending timers. Late timer callbacks are ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimer()
	m.gen++
}

func (m *Machine) load(ctx context.Context, index int) error {
	m.cancelTimer()
	m.gen++
	m.reset()
	m.id = uuid.NewString()

	n := m.set.Len()
	if n == 0 {
		m.state = StateUnavailable
		m.index = 0
		return nil
	}
	m.index = Clamp(index, n)

	lvl, err := m.set.Level(m.index)
	if err != nil {
		m.state = StateUnavailable
		m.err = fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		m.metrics.ContentError("level_shape")
		m.logger.Warn("level rejected",
			zap.String("grade", string(m.set.Grade)),
			zap.String("subject", m.set.Subject),
			zap.Int("level", m.index),
			zap.Error(err),
		)
		return m.err
	}
	m.level = lvl

	switch lvl.Mode {
	case content.ModePuzzle:
		m.loadPuzzle(ctx, lvl.Puzzle)
	case content.ModeDragDrop:
		m.loadDragDrop(lvl.DragDrop)
	case content.ModeBattle:
		m.questions = content.PrepareQuestions(m.rnd, lvl.Battle.Questions)
	case content.ModeQuiz:
		m.questions = content.PrepareQuestions(m.rnd, lvl.Quiz.Questions)
	}

	m.started = m.clock.Now()
	m.state = StateLoaded
	m.ledger.SetActivity(ctx, m.set.Subject)
	m.logger.Info("level loaded",
		zap.String("session_id", m.id),
		zap.String("mode", string(lvl.Mode)),
		zap.String("grade", string(m.set.Grade)),
		zap.String("subject", m.set.Subject),
		zap.Int("level", m.index),
		zap.Int("levels", n),
	)
	return nil
}

func (m *Machine) reset() {
	m.level = content.Level{}
	m.err = nil
	m.started = time.Time{}
	m.finished = time.Time{}
	m.layout = nil
	m.moves = 0
	m.items, m.targets, m.placed = nil, nil, nil
	m.questions = nil
	m.qIndex = 0
	m.selected = ""
	m.feedback = nil
	m.correct = 0
	m.levelXP = 0
	m.noMore = false
	m.newBadges = nil
}

func (m *Machine) loadPuzzle(ctx context.Context, p *content.PuzzleLevel) {
	grid := p.GridSize()
	layout, err := m.boards.Load(ctx, p.Image, grid, puzzle.WithRand(m.rnd))
	if err != nil {
		m.logger.Warn("puzzle layout failed, using plain tiles", zap.Error(err))
		layout, _ = puzzle.Build(puzzle.Source{}, grid, m.rnd, puzzle.AbstractStrategy{})
	}
	m.layout = layout
}

func (m *Machine) loadDragDrop(d *content.DragDropLevel) {
	m.items = make([]dragItem, len(d.Pairs))
	m.targets = make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		m.items[i] = dragItem{label: p.Left, want: p.Right}
		m.targets[i] = p.Right
	}
	shuffle.Slice(m.rnd, m.items)
	shuffle.Slice(m.rnd, m.targets)
	m.placed = make([]int, len(m.targets))
	for i := range m.placed {
		m.placed[i] = -1
	}
}

func (m *Machine) advance(ctx context.Context) bool {
	switch m.state {
	case StateLocked:
		m.cancelTimer()
		m.gen++
		m.qIndex++
		m.selected = ""
		m.feedback = nil
		m.state = StateInProgress
		return true
	case StateSolved:
		if m.noMore {
			return false
		}
		if m.index >= m.set.Len() {
			m.cancelTimer()
			m.noMore = true
			m.logger.Info("no more levels",
				zap.String("grade", string(m.set.Grade)),
				zap.String("subject", m.set.Subject),
			)
			return true
		}
		m.state = StateAdvancing
		_ = m.load(ctx, m.index+1)
		return true
	}
	return false
}

// schedule arms the auto-advance timer for the current generation.
func (m *Machine) schedule() {
	m.cancelTimer()
	gen := m.gen
	m.timer = m.clock.AfterFunc(m.delay, func() { m.fire(gen) })
}

func (m *Machine) fire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.timer = nil
	m.advance(context.Background())
}

func (m *Machine) cancelTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// solve enters Solved and settles the level's rewards.
func (m *Machine) solve(ctx context.Context) {
	m.state = StateSolved
	m.finished = m.clock.Now()
	mode := m.level.Mode

	switch mode {
	case content.ModePuzzle:
		m.levelXP += m.ledger.AwardCompletion(ctx, m.layout.Grid)
	case content.ModeDragDrop:
		m.levelXP += m.ledger.AwardCompletion(ctx, len(m.targets))
	case content.ModeQuiz:
		m.ledger.RecordQuiz(ctx, m.set.Subject, m.correct, len(m.questions))
		if m.badges != nil && m.correct == len(m.questions) {
			m.newBadges = append(m.newBadges, m.badges.AwardPerfectQuiz(ctx, m.ledger.XP(), m.set.Subject)...)
		}
	}
	m.checkBadges(ctx)

	m.metrics.LevelSolved(string(mode), string(m.set.Grade))
	if m.leaderboard != nil {
		_ = m.leaderboard.Record(ctx, progress.Entry{
			Name:  m.player,
			Score: m.levelXP,
			XP:    m.ledger.XP(),
			Date:  m.finished.Format(time.DateOnly),
		})
	}
	m.logger.Info("level solved",
		zap.String("session_id", m.id),
		zap.String("mode", string(mode)),
		zap.Int("level", m.index),
		zap.Int("level_xp", m.levelXP),
		zap.Duration("elapsed", m.finished.Sub(m.started)),
	)
	m.schedule()
}

func (m *Machine) checkBadges(ctx context.Context) {
	if m.badges == nil {
		return
	}
	m.newBadges = append(m.newBadges, m.badges.Evaluate(ctx, m.ledger.State())...)
}

// playable reports whether the level accepts moves.
func (m *Machine) playable() bool {
	return m.state == StateLoaded || m.state == StateInProgress
}

// Snapshot returns a copy of the session for rendering.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		SessionID:    m.id,
		Mode:         m.level.Mode,
		State:        m.state,
		Level:        m.index,
		Title:        m.level.Title(),
		Locked:       m.state == StateLocked,
		Solved:       m.state == StateSolved,
		XP:           m.ledger.XP(),
		LevelXP:      m.levelXP,
		Streak:       m.ledger.Streak(),
		Celebrate:    m.state == StateSolved,
		NoMoreLevels: m.noMore,
		NewBadges:    append([]badges.Award(nil), m.newBadges...),
		Err:          m.err,
	}
	if m.set != nil {
		s.Grade = m.set.Grade
		s.Subject = m.set.Subject
		s.Levels = m.set.Len()
		if s.Mode == "" {
			s.Mode = m.set.Mode
		}
	}
	if !m.started.IsZero() {
		end := m.finished
		if end.IsZero() {
			end = m.clock.Now()
		}
		s.Elapsed = end.Sub(m.started)
	}

	switch {
	case m.level.Puzzle != nil:
		s.Desc = m.level.Puzzle.Desc
	case m.level.DragDrop != nil:
		s.Desc = m.level.DragDrop.Desc
	case m.level.Battle != nil:
		s.Desc = m.level.Battle.Desc
	}

	if m.layout != nil {
		s.Grid = m.layout.Grid
		s.BoardKind = m.layout.Kind
		s.Image = m.layout.Image
		s.Tiles = make([]puzzle.Tile, m.layout.Len())
		for slot := range s.Tiles {
			s.Tiles[slot] = m.layout.TileAt(slot)
		}
		s.Moves = m.moves
	}

	if m.items != nil {
		s.Items = make([]Item, len(m.items))
		for i, it := range m.items {
			s.Items[i] = Item{Label: it.label, Done: m.itemDone(i)}
		}
		s.Targets = make([]Target, len(m.targets))
		for j, label := range m.targets {
			t := Target{Label: label, Correct: m.correctAt(j)}
			if p := m.placed[j]; p >= 0 {
				t.Placed = m.items[p].label
			}
			s.Targets[j] = t
		}
	}

	if len(m.questions) > 0 {
		q := m.questions[m.qIndex]
		s.Question = &q
		s.QuestionIndex = m.qIndex
		s.QuestionCount = len(m.questions)
		s.Options = append([]string(nil), q.Options...)
		s.Selected = m.selected
		s.Correct = m.correct
		if m.feedback != nil {
			fb := *m.feedback
			s.Feedback = &fb
		}
	}
	return s
}
