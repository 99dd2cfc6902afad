package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/metrics"
	"github.com/abhisek/playarcade/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)

func TestDifficultyMultiplier(t *testing.T) {
	want := []float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.2, 2.4, 2.6}
	for i, w := range want {
		assert.InDelta(t, w, DifficultyMultiplier(content.GradeOf(i+1)), 1e-9, "grade%d", i+1)
	}
	assert.Equal(t, 1.0, DifficultyMultiplier("nursery"))
}

func TestCompletionReward(t *testing.T) {
	tests := []struct {
		grade content.Grade
		grid  int
		want  int
	}{
		{"grade1", 3, 12},
		{"grade1", 2, 8},
		{"grade2", 3, 14},
		{"grade5", 4, 29},
		{"grade9", 6, 62},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionReward(tt.grade, tt.grid), "%s grid %d", tt.grade, tt.grid)
	}
}

func TestMoveReward(t *testing.T) {
	tests := []struct{ base, want int }{
		{0, 1}, {8, 1}, {12, 1}, {25, 2}, {62, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoveReward(tt.base), "base %d", tt.base)
	}
}

func TestMatchReward(t *testing.T) {
	assert.Equal(t, 10, MatchReward("grade1"))
	assert.Equal(t, 12, MatchReward("grade2"))
	assert.Equal(t, 26, MatchReward("grade9"))
}

func TestPlayerLevel(t *testing.T) {
	assert.Equal(t, 1, PlayerLevel(0))
	assert.Equal(t, 1, PlayerLevel(99))
	assert.Equal(t, 2, PlayerLevel(100))
	assert.Equal(t, 300, NextPlayerLevelAt(250))
}

func TestCorrectAnswerSequences(t *testing.T) {
	tests := []struct {
		name       string
		answers    []bool
		wantXP     int
		wantStreak int
	}{
		{"none", nil, 0, 0},
		{"all correct", []bool{true, true, true}, 30, 3},
		{"reset in middle", []bool{true, false, true}, 20, 1},
		{"ends wrong", []bool{true, true, false}, 20, 0},
		{"trailing run", []bool{false, true, true, false, true, true, true}, 50, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l := Load(ctx, store.NewMemory(), "grade1", WithClock(fixedClock(now)))
			for _, ok := range tt.answers {
				if ok {
					l.AwardCorrectAnswer(ctx, DefaultCorrectWeight)
				} else {
					l.RecordWrongAnswer(ctx)
				}
			}
			assert.Equal(t, tt.wantXP, l.XP())
			assert.Equal(t, tt.wantStreak, l.Streak())
		})
	}
}

func TestAwardCorrectAnswerDefaultsWeight(t *testing.T) {
	ctx := context.Background()
	l := Load(ctx, store.NewMemory(), "grade1")
	assert.Equal(t, 10, l.AwardCorrectAnswer(ctx, 0))
	assert.Equal(t, 5, l.AwardCorrectAnswer(ctx, 5))
}

func seedProgress(t *testing.T, kv store.KV, st State) {
	t.Helper()
	data, err := json.Marshal(st)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), KeyProgress, string(data)))
}

func TestWeeklyRollover(t *testing.T) {
	tests := []struct {
		name         string
		age          time.Duration
		wantWeeklyXP int
		wantRestamp  bool
	}{
		{"exactly seven days", 7 * 24 * time.Hour, 0, true},
		{"six days", 6 * 24 * time.Hour, 120, false},
		{"long ago", 30 * 24 * time.Hour, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemory()
			start := now.Add(-tt.age)
			seedProgress(t, kv, State{XP: 500, WeeklyXP: 120, WeeklyTarget: 200, WeekStart: stamp(start)})

			l := Load(context.Background(), kv, "grade1", WithClock(fixedClock(now)))
			st := l.State()
			assert.Equal(t, tt.wantWeeklyXP, st.WeeklyXP)
			assert.Equal(t, 500, st.XP, "lifetime XP never drops")
			if tt.wantRestamp {
				assert.Equal(t, stamp(now), st.WeekStart)
			} else {
				assert.Equal(t, stamp(start), st.WeekStart)
			}
		})
	}
}

func TestWeekStartStampedWhenMissing(t *testing.T) {
	kv := store.NewMemory()
	seedProgress(t, kv, State{XP: 40, WeeklyXP: 40})

	l := Load(context.Background(), kv, "grade1", WithClock(fixedClock(now)))
	assert.Equal(t, stamp(now), l.State().WeekStart)
	assert.Equal(t, 40, l.State().WeeklyXP)
	assert.Equal(t, DefaultWeeklyTarget, l.State().WeeklyTarget)

	raw, ok, err := kv.Get(context.Background(), KeyProgress)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, stamp(now), "stamp must be persisted")
}

func TestBrowserDateStampIsAccepted(t *testing.T) {
	kv := store.NewMemory()
	seedProgress(t, kv, State{WeeklyXP: 30, WeekStart: now.AddDate(0, 0, -8).Format("Mon Jan 02 2006")})

	l := Load(context.Background(), kv, "grade1", WithClock(fixedClock(now)))
	assert.Equal(t, 0, l.State().WeeklyXP)
}

func TestMalformedValuesUseDefaults(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, KeyProgress, "{not json"))
	require.NoError(t, kv.Set(ctx, XPKey("grade1"), "lots"))

	core, logs := observer.New(zap.WarnLevel)
	l := Load(ctx, kv, "grade1", WithLogger(zap.New(core)), WithClock(fixedClock(now)))

	assert.Equal(t, 0, l.XP())
	assert.Equal(t, 0, l.GradeXP())
	assert.Equal(t, DefaultWeeklyTarget, l.State().WeeklyTarget)
	assert.Equal(t, 2, logs.Len())
}

func TestAwardsPersist(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	l := Load(ctx, kv, "grade2", WithClock(fixedClock(now)))
	l.SetActivity(ctx, "puzzle")

	assert.Equal(t, 1, l.AwardMove(ctx, CompletionReward("grade2", 3)))
	assert.Equal(t, 14, l.AwardCompletion(ctx, 3))
	assert.Equal(t, 12, l.AwardMatch(ctx))

	v, ok, err := kv.Get(ctx, XPKey("grade2"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "27", v)

	reloaded := Load(ctx, kv, "grade2", WithClock(fixedClock(now)))
	st := reloaded.State()
	assert.Equal(t, 27, st.XP)
	assert.Equal(t, 27, st.WeeklyXP)
	assert.Equal(t, "grade2", st.LastGrade)
	assert.Equal(t, "puzzle", st.LastSubject)
	assert.Equal(t, stamp(now), st.LastPlayed)

	other := Load(ctx, kv, "grade3")
	assert.Equal(t, 0, other.GradeXP(), "grade xp is scoped per grade")
	assert.Equal(t, 27, other.XP(), "lifetime xp is global")
}

func TestPersistIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	l := Load(ctx, kv, "grade1", WithClock(fixedClock(now)))
	l.AwardCorrectAnswer(ctx, 10)

	require.NoError(t, l.Persist(ctx))
	first, _, _ := kv.Get(ctx, KeyProgress)
	require.NoError(t, l.Persist(ctx))
	second, _, _ := kv.Get(ctx, KeyProgress)
	assert.Equal(t, first, second)
	assert.Equal(t, 10, l.XP())
}

func TestRecordQuiz(t *testing.T) {
	ctx := context.Background()
	l := Load(ctx, store.NewMemory(), "grade1")
	l.RecordQuiz(ctx, "maths", 3, 4)
	l.RecordQuiz(ctx, "maths", 1, 4)
	l.RecordQuiz(ctx, "science", 0, 0)

	st := l.State()
	assert.Equal(t, 3, st.Quizzes)
	assert.Equal(t, 75, st.SubjectStats["maths"], "best result is kept")
	_, ok := st.SubjectStats["science"]
	assert.False(t, ok)
}

type failingKV struct{ store.KV }

var errQuota = errors.New("quota exceeded")

func (failingKV) Set(context.Context, string, string) error { return errQuota }

func TestPersistFailureKeepsXPInMemory(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	m := metrics.New()
	l := Load(ctx, failingKV{store.NewMemory()}, "grade1",
		WithLogger(zap.New(core)),
		WithMetrics(m),
		WithClock(fixedClock(now)),
	)

	assert.NotPanics(t, func() {
		l.AwardCorrectAnswer(ctx, 10)
		l.AwardCorrectAnswer(ctx, 10)
	})
	assert.Equal(t, 20, l.XP())
	assert.Equal(t, 2, l.Streak())
	assert.ErrorIs(t, l.LastPersistError(), errQuota)
	assert.Positive(t, logs.FilterMessage("progress not saved, keeping it in memory").Len())
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.PersistFailures), 2.0)
	assert.Equal(t, 20.0, testutil.ToFloat64(m.XPAwarded.WithLabelValues("correct_answer")))
}

func TestJournalFlushedOnPersist(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "p.db"))
	require.NoError(t, err)
	defer s.Close()

	l := Load(ctx, s, "grade1", WithJournal(s.Events()), WithClock(fixedClock(now)))
	l.SetActivity(ctx, "puzzle")
	l.AwardMove(ctx, 8)
	l.AwardCompletion(ctx, 2)

	events, err := s.Events().Query(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, store.KindLevel, events[0].Kind)
	assert.Equal(t, 8, events[0].Amount)
	assert.Equal(t, "puzzle", events[0].Subject)
	assert.Equal(t, store.KindXP, events[1].Kind)
}

func TestWeeklyGoal(t *testing.T) {
	assert.Equal(t, GoalKeepGoing, State{WeeklyXP: 50, WeeklyTarget: 200}.WeeklyGoal())
	assert.Equal(t, GoalAlmost, State{WeeklyXP: 100, WeeklyTarget: 200}.WeeklyGoal())
	assert.Equal(t, GoalCompleted, State{WeeklyXP: 250, WeeklyTarget: 200}.WeeklyGoal())
	assert.Equal(t, 100, State{WeeklyXP: 250, WeeklyTarget: 200}.WeeklyPercent())
	assert.Equal(t, 25, State{WeeklyXP: 50, WeeklyTarget: 200}.WeeklyPercent())
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	b := NewLeaderboard(store.NewMemory(), nil)

	require.NoError(t, b.Record(ctx, Entry{Name: "Asha", Score: 30, XP: 100}))
	require.NoError(t, b.Record(ctx, Entry{Name: "Ben", Score: 50, XP: 10}))
	require.NoError(t, b.Record(ctx, Entry{Name: "Chen", Score: 30, XP: 300}))

	top := b.Top(ctx, 0)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Ben", "Chen", "Asha"}, []string{top[0].Name, top[1].Name, top[2].Name})
	assert.Len(t, b.Top(ctx, 2), 2)
}

func TestLeaderboardTrimsToSize(t *testing.T) {
	ctx := context.Background()
	b := NewLeaderboard(store.NewMemory(), nil)
	for i := 0; i < LeaderboardSize+5; i++ {
		require.NoError(t, b.Record(ctx, Entry{Name: fmt.Sprintf("p%d", i), Score: i}))
	}
	top := b.Top(ctx, 100)
	require.Len(t, top, LeaderboardSize)
	assert.Equal(t, LeaderboardSize+4, top[0].Score)
}

func TestLeaderboardMalformed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, KeyLeaderboard, "oops"))
	assert.Empty(t, NewLeaderboard(kv, nil).Top(ctx, 20))
}

func TestProfileAndName(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	p, err := LoadProfile(ctx, kv)
	require.NoError(t, err)
	assert.Empty(t, p.Badges)

	p.Badges = append(p.Badges, "streak-5")
	require.NoError(t, SaveProfile(ctx, kv, p))
	p, err = LoadProfile(ctx, kv)
	require.NoError(t, err)
	assert.True(t, p.HasBadge("streak-5"))

	assert.Equal(t, DefaultStudentName, StudentName(ctx, kv))
	_, ok := LookupStudentName(ctx, kv)
	assert.False(t, ok, "no name stored yet")
	assert.Error(t, SetStudentName(ctx, kv, "  "))
	require.NoError(t, SetStudentName(ctx, kv, " Meera "))
	assert.Equal(t, "Meera", StudentName(ctx, kv))
	name, ok := LookupStudentName(ctx, kv)
	assert.True(t, ok)
	assert.Equal(t, "Meera", name)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	l := Load(ctx, kv, "grade4")
	l.AwardCorrectAnswer(ctx, 10)
	require.NoError(t, NewLeaderboard(kv, nil).Record(ctx, Entry{Name: "x", Score: 1}))
	require.NoError(t, SetStudentName(ctx, kv, "Meera"))

	require.NoError(t, Reset(ctx, kv))
	assert.Equal(t, []string{KeyStudentName}, kv.Keys())
}
