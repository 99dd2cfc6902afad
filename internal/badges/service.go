package badges

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/progress"
	"github.com/abhisek/playarcade/internal/store"
)

// Service decides which badges a player has earned and records them on
// the profile.
type Service struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time

	// SessionBadges accumulates badges awarded during the current session.
	SessionBadges []Award
}

// NewService creates a badge service over kv.
func NewService(kv store.KV, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{kv: kv, logger: logger, now: time.Now}
}

// Evaluate awards every streak, XP and weekly-goal badge that st qualifies
// for and the profile does not hold yet.
func (s *Service) Evaluate(ctx context.Context, st progress.State) []Award {
	var candidates []Award
	for t := BaseStreakThreshold; t <= st.Streak; t = NextStreakThreshold(t) {
		candidates = append(candidates, Award{
			ID:     fmt.Sprintf("streak-%d", t),
			Type:   BadgeStreak,
			Rarity: StreakRarity(t),
			Reason: fmt.Sprintf("%d correct in a row!", t),
		})
	}
	for _, m := range XPMilestones {
		if st.XP < m {
			break
		}
		candidates = append(candidates, Award{
			ID:     fmt.Sprintf("xp-%d", m),
			Type:   BadgeXP,
			Rarity: XPRarity(m),
			Reason: fmt.Sprintf("Earned %d XP", m),
		})
	}
	if st.WeeklyGoal() == progress.GoalCompleted {
		week := st.WeekStart
		if i := strings.IndexByte(week, 'T'); i > 0 {
			week = week[:i]
		}
		candidates = append(candidates, Award{
			ID:     "weekly-" + week,
			Type:   BadgeWeekly,
			Rarity: RarityRare,
			Reason: fmt.Sprintf("Reached the weekly goal of %d XP", st.WeeklyTarget),
		})
	}
	return s.grant(ctx, st.XP, candidates)
}

// AwardPerfectQuiz awards the perfect-score badge for a subject.
func (s *Service) AwardPerfectQuiz(ctx context.Context, xp int, subject string) []Award {
	return s.grant(ctx, xp, []Award{{
		ID:     "perfect-" + subject,
		Type:   BadgePerfect,
		Rarity: RarityEpic,
		Reason: fmt.Sprintf("Perfect %s quiz", subject),
	}})
}

// ResetSession clears the session badge accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionBadges = nil
}

func (s *Service) grant(ctx context.Context, xp int, candidates []Award) []Award {
	profile, err := progress.LoadProfile(ctx, s.kv)
	if err != nil {
		s.logger.Warn("badge check skipped", zap.Error(err))
		return nil
	}

	var awarded []Award
	for _, c := range candidates {
		if profile.HasBadge(c.ID) {
			continue
		}
		c.AwardedAt = s.now()
		profile.Badges = append(profile.Badges, c.ID)
		awarded = append(awarded, c)
	}
	if len(awarded) == 0 && profile.XP == xp {
		return nil
	}

	profile.XP = xp
	if err := progress.SaveProfile(ctx, s.kv, profile); err != nil {
		s.logger.Warn("badges not saved", zap.Error(err))
	}
	for _, a := range awarded {
		s.logger.Info("badge awarded", zap.String("badge", a.ID), zap.String("rarity", string(a.Rarity)))
	}
	s.SessionBadges = append(s.SessionBadges, awarded...)
	return awarded
}
