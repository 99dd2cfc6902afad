package badges

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BadgeType identifies the category of achievement.
type BadgeType string

const (
	BadgeStreak  BadgeType = "streak"
	BadgeXP      BadgeType = "xp"
	BadgeWeekly  BadgeType = "weekly"
	BadgePerfect BadgeType = "perfect"
)

// AllBadgeTypes returns all badge types in display order.
func AllBadgeTypes() []BadgeType {
	return []BadgeType{BadgeStreak, BadgeXP, BadgeWeekly, BadgePerfect}
}

// DisplayName returns a human-readable label for the badge type.
func (t BadgeType) DisplayName() string {
	switch t {
	case BadgeStreak:
		return "Streak"
	case BadgeXP:
		return "XP Milestone"
	case BadgeWeekly:
		return "Weekly Goal"
	case BadgePerfect:
		return "Perfect Quiz"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the badge type.
func (t BadgeType) Icon() string {
	switch t {
	case BadgeStreak:
		return "🔥"
	case BadgeXP:
		return "⭐"
	case BadgeWeekly:
		return "📅"
	case BadgePerfect:
		return "🏆"
	default:
		return "✦"
	}
}

// Award is a single badge earned.
type Award struct {
	ID        string // stable key stored in the profile, e.g. "streak-10"
	Type      BadgeType
	Rarity    Rarity
	Reason    string
	AwardedAt time.Time
}

// TypeOf recovers the badge type from a stored badge ID.
func TypeOf(id string) BadgeType {
	for _, t := range AllBadgeTypes() {
		if len(id) > len(t) && id[:len(t)] == string(t) && id[len(t)] == '-' {
			return t
		}
	}
	return BadgeType(id)
}

// Describe rebuilds the display form of a stored badge ID. Unknown IDs
// come back as common badges named after the ID.
func Describe(id string) Award {
	t := TypeOf(id)
	suffix := strings.TrimPrefix(id, string(t)+"-")
	a := Award{ID: id, Type: t, Rarity: RarityCommon, Reason: id}

	switch t {
	case BadgeStreak:
		if n, err := strconv.Atoi(suffix); err == nil {
			a.Rarity = StreakRarity(n)
			a.Reason = fmt.Sprintf("%d correct in a row!", n)
		}
	case BadgeXP:
		if n, err := strconv.Atoi(suffix); err == nil {
			a.Rarity = XPRarity(n)
			a.Reason = fmt.Sprintf("Earned %d XP", n)
		}
	case BadgeWeekly:
		a.Rarity = RarityRare
		a.Reason = "Weekly goal reached (week of " + suffix + ")"
	case BadgePerfect:
		a.Rarity = RarityEpic
		a.Reason = fmt.Sprintf("Perfect %s quiz", suffix)
	}
	return a
}
