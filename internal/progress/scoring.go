package progress

import (
	"math"

	"github.com/abhisek/playarcade/internal/content"
)

const (
	// BaseUnitReward is the completion reward of a reference-size level at
	// the easiest grade.
	BaseUnitReward = 12

	// ReferenceGrid is the grid size BaseUnitReward is calibrated for.
	ReferenceGrid = content.DefaultGrid

	// MoveRewardRatio is the share of a level's completion reward paid
	// for each accepted puzzle move.
	MoveRewardRatio = 0.06

	// DefaultCorrectWeight is paid per correct battle answer.
	DefaultCorrectWeight = 10

	// MatchWeight is paid per correct drag-drop placement before the
	// grade multiplier.
	MatchWeight = 10

	// DefaultWeeklyTarget is the weekly XP goal for new ledgers.
	DefaultWeeklyTarget = 200

	// XPPerPlayerLevel is how much lifetime XP each player level takes.
	XPPerPlayerLevel = 100
)

// difficulty is indexed by grade number - 1.
var difficulty = [content.MaxGrade]float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.2, 2.4, 2.6}

// DifficultyMultiplier returns the per-grade reward multiplier. Unknown
// grades count as the easiest.
func DifficultyMultiplier(g content.Grade) float64 {
	n := g.Number()
	if n == 0 {
		return difficulty[0]
	}
	return difficulty[n-1]
}

// CompletionReward is round(BaseUnitReward × multiplier × grid/ReferenceGrid).
func CompletionReward(g content.Grade, gridSize int) int {
	return int(math.Round(BaseUnitReward * DifficultyMultiplier(g) * float64(gridSize) / ReferenceGrid))
}

// MoveReward is the per-move puzzle reward for a level whose completion
// reward is base. It is never less than 1.
func MoveReward(base int) int {
	return max(1, int(math.Round(float64(base)*MoveRewardRatio)))
}

// MatchReward is the drag-drop reward for one correct placement.
func MatchReward(g content.Grade) int {
	return int(math.Round(MatchWeight * DifficultyMultiplier(g)))
}

// PlayerLevel returns the 1-based player level for lifetime XP.
func PlayerLevel(xp int) int {
	return xp/XPPerPlayerLevel + 1
}

// NextPlayerLevelAt returns the XP at which the next player level starts.
func NextPlayerLevelAt(xp int) int {
	return PlayerLevel(xp) * XPPerPlayerLevel
}
