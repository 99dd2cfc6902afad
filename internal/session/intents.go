package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/content"
	"github.com/abhisek/playarcade/internal/evaluate"
	"github.com/abhisek/playarcade/internal/progress"
)

// SelectOption answers the current quiz or battle question. It is accepted
// only while unlocked. Battle answers and correct quiz answers advance on
// their own after the delay; a wrong quiz answer waits for Advance. The
// last answer of a level solves it.
func (m *Machine) SelectOption(ctx context.Context, opt string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectOption(ctx, opt)
}

// SelectSpoken answers with a voice transcript, resolved against the
// current options first. It reports false when nothing matched.
func (m *Machine) SelectSpoken(ctx context.Context, transcript string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.questions) == 0 {
		return false
	}
	opt, ok := evaluate.MatchSpoken(m.questions[m.qIndex].Options, transcript)
	if !ok {
		return false
	}
	return m.selectOption(ctx, opt)
}

func (m *Machine) selectOption(ctx context.Context, opt string) bool {
	if len(m.questions) == 0 || !m.playable() {
		return false
	}
	mode := m.level.Mode
	q := m.questions[m.qIndex]
	res := evaluate.Evaluate(q, opt)

	m.selected = opt
	m.feedback = &Feedback{
		Correct:     res.IsCorrect,
		Selected:    opt,
		Answer:      q.Answer,
		Explanation: res.Explanation,
	}
	m.metrics.Answer(string(mode), res.IsCorrect)

	if res.IsCorrect {
		m.correct++
		weight := m.battleWeight
		if mode == content.ModeQuiz {
			weight = m.quizWeight
		}
		m.levelXP += m.ledger.AwardCorrectAnswer(ctx, weight)
	} else {
		m.ledger.RecordWrongAnswer(ctx)
	}
	m.checkBadges(ctx)

	m.logger.Debug("answer",
		zap.String("session_id", m.id),
		zap.Int("question", m.qIndex+1),
		zap.Bool("correct", res.IsCorrect),
	)

	if m.qIndex == len(m.questions)-1 {
		m.solve(ctx)
		return true
	}
	m.state = StateLocked
	if mode == content.ModeBattle || res.IsCorrect {
		m.schedule()
	}
	return true
}

// SwapTiles exchanges the puzzle tiles in two slots. Every accepted swap
// pays the move reward; the swap that restores the picture solves the
// level. Swaps are rejected once solved.
func (m *Machine) SwapTiles(ctx context.Context, a, b int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.layout == nil || !m.playable() {
		return false
	}
	if !m.layout.Swap(a, b) {
		return false
	}
	m.moves++
	m.state = StateInProgress
	base := progress.CompletionReward(m.ledger.Grade(), m.layout.Grid)
	m.levelXP += m.ledger.AwardMove(ctx, base)
	if m.layout.Solved() {
		m.solve(ctx)
	}
	return true
}

// Reshuffle deals the puzzle again. It is rejected once solved.
func (m *Machine) Reshuffle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.layout == nil || !m.playable() {
		return false
	}
	m.layout.Reshuffle(m.rnd)
	m.state = StateInProgress
	return true
}

// DropItem places drag-drop item i on target j. A target that already
// holds a matching item, or an item already matched, rejects the drop.
// A wrong drop stays visible until replaced. Only a new correct match pays
// XP, and matching every target solves the level.
func (m *Machine) DropItem(ctx context.Context, item, target int) (correct, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil || !m.playable() {
		return false, false
	}
	if item < 0 || item >= len(m.items) || target < 0 || target >= len(m.targets) {
		return false, false
	}
	if m.correctAt(target) || m.itemDone(item) {
		return false, false
	}

	for j, p := range m.placed {
		if p == item {
			m.placed[j] = -1
		}
	}
	m.placed[target] = item
	m.state = StateInProgress

	correct = m.correctAt(target)
	m.metrics.Answer(string(content.ModeDragDrop), correct)
	if !correct {
		return false, true
	}
	m.levelXP += m.ledger.AwardMatch(ctx)
	m.checkBadges(ctx)
	if m.allMatched() {
		m.solve(ctx)
	}
	return true, true
}

func (m *Machine) correctAt(target int) bool {
	p := m.placed[target]
	return p >= 0 && m.items[p].want == m.targets[target]
}

func (m *Machine) itemDone(item int) bool {
	for j, p := range m.placed {
		if p == item && m.correctAt(j) {
			return true
		}
	}
	return false
}

func (m *Machine) allMatched() bool {
	for j := range m.targets {
		if !m.correctAt(j) {
			return false
		}
	}
	return true
}
