package badges

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/store"
)

func TestStreakRarity(t *testing.T) {
	tests := []struct {
		length int
		want   Rarity
	}{
		{5, RarityCommon},
		{9, RarityCommon},
		{10, RarityRare},
		{15, RarityEpic},
		{19, RarityEpic},
		{20, RarityLegendary},
		{100, RarityLegendary},
	}

	for _, tt := range tests {
		got := StreakRarity(tt.length)
		if got != tt.want {
			t.Errorf("StreakRarity(%d) = %q, want %q", tt.length, got, tt.want)
		}
	}
}

func TestXPRarity(t *testing.T) {
	tests := []struct {
		xp   int
		want Rarity
	}{
		{100, RarityCommon},
		{500, RarityRare},
		{1000, RarityEpic},
		{2500, RarityEpic},
		{5000, RarityLegendary},
	}
	for _, tt := range tests {
		if got := XPRarity(tt.xp); got != tt.want {
			t.Errorf("XPRarity(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestNextStreakThreshold(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{14, 15},
		{19, 20},
		{20, 25},
		{25, 30},
	}

	for _, tt := range tests {
		got := NextStreakThreshold(tt.current)
		if got != tt.want {
			t.Errorf("NextStreakThreshold(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, BadgeStreak, TypeOf("streak-10"))
	assert.Equal(t, BadgeWeekly, TypeOf("weekly-2026-10-19"))
	assert.Equal(t, BadgeType("legacy"), TypeOf("legacy"))
}

func TestEvaluateAwardsOnce(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := NewService(kv, nil)

	st := progress.State{XP: 520, Streak: 11, WeeklyXP: 40, WeeklyTarget: 200}
	got := svc.Evaluate(ctx, st)

	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"streak-5", "streak-10", "xp-100", "xp-500"}, ids)

	again := svc.Evaluate(ctx, st)
	assert.Empty(t, again, "badges are only awarded once")
	assert.Len(t, svc.SessionBadges, 4)

	p, err := progress.LoadProfile(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 520, p.XP)
	assert.Len(t, p.Badges, 4)
}

func TestWeeklyBadgePerWeek(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), nil)

	week1 := progress.State{WeeklyXP: 200, WeeklyTarget: 200, WeekStart: "2026-10-12T09:00:00Z"}
	week2 := progress.State{WeeklyXP: 210, WeeklyTarget: 200, WeekStart: "2026-10-19T09:00:00Z"}

	require.Len(t, svc.Evaluate(ctx, week1), 1)
	assert.Empty(t, svc.Evaluate(ctx, week1))
	got := svc.Evaluate(ctx, week2)
	require.Len(t, got, 1)
	assert.Equal(t, "weekly-2026-10-19", got[0].ID)
}

func TestPerfectQuiz(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), nil)
	got := svc.AwardPerfectQuiz(ctx, 40, "maths")
	require.Len(t, got, 1)
	assert.Equal(t, BadgePerfect, got[0].Type)
	assert.Empty(t, svc.AwardPerfectQuiz(ctx, 45, "maths"))

	svc.ResetSession()
	assert.Empty(t, svc.SessionBadges)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		id     string
		typ    BadgeType
		rarity Rarity
		reason string
	}{
		{"streak-10", BadgeStreak, RarityRare, "10 correct in a row!"},
		{"xp-1000", BadgeXP, RarityEpic, "Earned 1000 XP"},
		{"weekly-2026-10-19", BadgeWeekly, RarityRare, "Weekly goal reached (week of 2026-10-19)"},
		{"perfect-maths", BadgePerfect, RarityEpic, "Perfect maths quiz"},
		{"mystery", BadgeType("mystery"), RarityCommon, "mystery"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a := Describe(tt.id)
			assert.Equal(t, tt.id, a.ID)
			assert.Equal(t, tt.typ, a.Type)
			assert.Equal(t, tt.rarity, a.Rarity)
			assert.Equal(t, tt.reason, a.Reason)
		})
	}
}
