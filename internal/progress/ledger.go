package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/store"
)

// Week is the rollover period for weekly XP.
const Week = 7 * 24 * time.Hour

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *zap.Logger) Option {
	return func(g *Ledger) { g.logger = l }
}

// WithMetrics records awards and persistence failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Ledger) { g.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Ledger) { g.now = now }
}

// WithJournal appends every award to an event journal on Persist.
func WithJournal(r store.EventRepo) Option {
	return func(g *Ledger) { g.journal = r }
}

// Ledger is the cumulative XP and streak record for one player, scoped to
// the grade being played. It is owned by a single session at a time.
type Ledger struct {
	kv      store.KV
	journal store.EventRepo
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	grade   content.Grade
	state   State
	gradeXP int

	pending    []store.Event
	persistErr error
}

// Load reads the ledger for grade from kv. It never fails: absent or
// malformed values fall back to defaults and read errors are logged. The
// weekly rollover check runs here, once per load.
func Load(ctx context.Context, kv store.KV, grade content.Grade, opts ...Option) *Ledger {
	l := &Ledger{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
		grade:  grade,
		state:  defaultState(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if raw, ok := l.read(ctx, KeyProgress); ok {
		var st State
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			l.logger.Warn("malformed progress ledger, using defaults", zap.Error(err))
		} else {
			st.sanitize()
			l.state = st
		}
	}
	if raw, ok := l.read(ctx, XPKey(string(grade))); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			l.logger.Warn("malformed grade xp, using 0", zap.String("grade", string(grade)), zap.String("value", raw))
		} else {
			l.gradeXP = n
		}
	}

	if l.rollover() {
		_ = l.Persist(ctx)
	}
	return l
}

func (l *Ledger) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		l.logger.Warn("progress read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// rollover stamps a missing week start, or resets weekly XP once a full
// week has passed. It reports whether the state changed.
func (l *Ledger) rollover() bool {
	now := l.now()
	start, ok := parseStamp(l.state.WeekStart)
	if !ok {
		l.state.WeekStart = stamp(now)
		return true
	}
	if now.Sub(start) >= Week {
		l.logger.Info("weekly xp reset",
			zap.Int("weekly_xp", l.state.WeeklyXP),
			zap.String("week_start", l.state.WeekStart),
		)
		l.state.WeeklyXP = 0
		l.state.WeekStart = stamp(now)
		return true
	}
	return false
}

// Grade returns the grade this ledger scores.
func (l *Ledger) Grade() content.Grade { return l.grade }

// State returns a copy of the persisted ledger.
func (l *Ledger) State() State { return l.state.clone() }

// XP returns lifetime XP.
func (l *Ledger) XP() int { return l.state.XP }

// GradeXP returns lifetime XP earned in this ledger's grade.
func (l *Ledger) GradeXP() int { return l.gradeXP }

// Streak returns the current run of consecutive correct answers.
func (l *Ledger) Streak() int { return l.state.Streak }

// LastPersistError returns the error of the most recent failed Persist,
// or nil once a later Persist succeeds.
func (l *Ledger) LastPersistError() error { return l.persistErr }

// SetActivity records the grade and subject being played.
func (l *Ledger) SetActivity(ctx context.Context, subject string) {
	l.state.LastGrade = string(l.grade)
	l.state.LastSubject = subject
	l.state.LastPlayed = stamp(l.now())
	_ = l.Persist(ctx)
}

// AwardMove pays the per-move puzzle reward for a level whose completion
// reward is baseReward.
func (l *Ledger) AwardMove(ctx context.Context, baseReward int) int {
	return l.add(ctx, "move", MoveReward(baseReward), store.KindXP)
}

// AwardCorrectAnswer pays weight XP (DefaultCorrectWeight when weight is
// not positive) and extends the streak.
func (l *Ledger) AwardCorrectAnswer(ctx context.Context, weight int) int {
	if weight <= 0 {
		weight = DefaultCorrectWeight
	}
	l.state.Streak++
	l.state.BestStreak = max(l.state.BestStreak, l.state.Streak)
	l.state.Correct++
	return l.add(ctx, "correct_answer", weight, store.KindXP)
}

// RecordWrongAnswer resets the streak. XP is never taken away.
func (l *Ledger) RecordWrongAnswer(ctx context.Context) {
	l.state.Streak = 0
	_ = l.Persist(ctx)
}

// AwardCompletion pays the level completion bonus for a level of the given
// size in this ledger's grade.
func (l *Ledger) AwardCompletion(ctx context.Context, gridSize int) int {
	return l.add(ctx, "completion", CompletionReward(l.grade, gridSize), store.KindLevel)
}

// AwardMatch pays one correct drag-drop placement.
func (l *Ledger) AwardMatch(ctx context.Context) int {
	return l.add(ctx, "match", MatchReward(l.grade), store.KindXP)
}

// RecordQuiz counts a finished quiz and updates the subject's completion
// percentage, keeping the best result seen.
func (l *Ledger) RecordQuiz(ctx context.Context, subject string, correct, total int) {
	l.state.Quizzes++
	if total > 0 {
		pct := int(math.Round(float64(correct) * 100 / float64(total)))
		l.state.SubjectStats[subject] = max(l.state.SubjectStats[subject], pct)
	}
	l.journalAppend(store.KindLevel, subject, 0, fmt.Sprintf("quiz %d/%d", correct, total))
	_ = l.Persist(ctx)
}

func (l *Ledger) add(ctx context.Context, reason string, n int, kind string) int {
	if n <= 0 {
		return 0
	}
	l.state.XP += n
	l.state.WeeklyXP += n
	l.gradeXP += n
	l.state.LastPlayed = stamp(l.now())
	l.metrics.AddXP(reason, n)
	l.journalAppend(kind, l.state.LastSubject, n, reason)
	_ = l.Persist(ctx)
	return n
}

func (l *Ledger) journalAppend(kind, subject string, amount int, detail string) {
	if l.journal == nil {
		return
	}
	l.pending = append(l.pending, store.Event{
		Timestamp: l.now(),
		Kind:      kind,
		Grade:     string(l.grade),
		Subject:   subject,
		Amount:    amount,
		Detail:    detail,
	})
}

// Persist writes the ledger and the grade's lifetime XP. Writing the same
// state twice leaves the store unchanged. A failure is logged and counted,
// the in-memory state is kept, and the error is returned for callers that
// care; play never stops on it.
func (l *Ledger) Persist(ctx context.Context) error {
	err := l.persist(ctx)
	if err != nil {
		l.logger.Warn("progress not saved, keeping it in memory", zap.Error(err))
		l.metrics.PersistFailed()
	}
	l.persistErr = err
	return err
}

func (l *Ledger) persist(ctx context.Context) error {
	data, err := json.Marshal(l.state)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := l.kv.Set(ctx, XPKey(string(l.grade)), strconv.Itoa(l.gradeXP)); err != nil {
		return err
	}
	if err := l.kv.Set(ctx, KeyProgress, string(data)); err != nil {
		return err
	}

	for len(l.pending) > 0 {
		if _, err := l.journal.Append(ctx, l.pending[0]); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		l.pending = l.pending[1:]
	}
	return nil
}

// Reset deletes every progress key, keeping only the student's name.
func Reset(ctx context.Context, kv store.KV) error {
	keys := []string{KeyProgress, KeyLeaderboard, KeyProfile}
	for _, g := range content.Grades() {
		keys = append(keys, XPKey(string(g)))
	}
	for _, k := range keys {
		if err := kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("reset %s: %w", k, err)
		}
	}
	return nil
}
