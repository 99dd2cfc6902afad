package progress

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/store"
)

// LeaderboardSize is how many entries are kept and shown.
const LeaderboardSize = 20

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	XP    int    `json:"xp"`
	Date  string `json:"date"`
}

// Leaderboard is the local high-score table.
type Leaderboard struct {
	kv     store.KV
	logger *zap.Logger
}

// NewLeaderboard creates a leaderboard over kv.
func NewLeaderboard(kv store.KV, logger *zap.Logger) *Leaderboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Leaderboard{kv: kv, logger: logger}
}

// Top returns up to n entries, best first. Unreadable data yields an empty
// table.
func (b *Leaderboard) Top(ctx context.Context, n int) []Entry {
	entries := b.load(ctx)
	SortEntries(entries)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Record adds an entry and rewrites the table, trimmed to LeaderboardSize.
func (b *Leaderboard) Record(ctx context.Context, e Entry) error {
	entries := append(b.load(ctx), e)
	SortEntries(entries)
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := b.kv.Set(ctx, KeyLeaderboard, string(data)); err != nil {
		b.logger.Warn("leaderboard not saved", zap.Error(err))
		return err
	}
	return nil
}

func (b *Leaderboard) load(ctx context.Context) []Entry {
	raw, ok, err := b.kv.Get(ctx, KeyLeaderboard)
	if err != nil {
		b.logger.Warn("leaderboard read failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		b.logger.Warn("malformed leaderboard, ignoring", zap.Error(err))
		return nil
	}
	return entries
}

// SortEntries orders by score, then XP, both descending. Ties keep their
// recorded order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.XP, a.XP)
	})
}
