package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "events"

// sequenceCounter hands out the journal's monotonic sequence numbers. It
// uses raw SQL because the increment must be atomic in the database; the
// mutex serialises callers within the process.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with the ent SQL builder.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) Append(ctx context.Context, e Event) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("sequence", "created_at", "kind", "grade", "subject", "amount", "detail").
		Values(seqNum, ts.UnixMilli(), e.Kind, e.Grade, e.Subject, e.Amount, e.Detail).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save %s event: %w", e.Kind, err)
	}
	return seqNum, nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	status := "ok"
	if !data.Success {
		status = "error: " + data.ErrorMessage
	}
	detail := strings.Join([]string{
		data.Provider,
		data.Model,
		data.Purpose,
		fmt.Sprintf("in=%d out=%d %dms", data.InputTokens, data.OutputTokens, data.LatencyMs),
		status,
	}, " | ")

	_, err := r.Append(ctx, Event{
		Kind:   KindLLMRequest,
		Amount: data.InputTokens + data.OutputTokens,
		Detail: detail,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// ParseLLMRequest reads back the fields AppendLLMRequest packed into an
// event's detail. It reports false for other kinds or a malformed detail.
func ParseLLMRequest(e Event) (LLMRequestEventData, bool) {
	if e.Kind != KindLLMRequest {
		return LLMRequestEventData{}, false
	}
	parts := strings.Split(e.Detail, " | ")
	if len(parts) != 5 {
		return LLMRequestEventData{}, false
	}
	d := LLMRequestEventData{Provider: parts[0], Model: parts[1], Purpose: parts[2]}
	if _, err := fmt.Sscanf(parts[3], "in=%d out=%d %dms", &d.InputTokens, &d.OutputTokens, &d.LatencyMs); err != nil {
		return LLMRequestEventData{}, false
	}
	if parts[4] == "ok" {
		d.Success = true
	} else {
		d.ErrorMessage = strings.TrimPrefix(parts[4], "error: ")
	}
	return d, true
}

func (r *eventRepo) Query(ctx context.Context, opts QueryOpts) ([]Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "created_at", "kind", "grade", "subject", "amount", "detail").
		From(entsql.Table(eventsTable))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", opts.Kind))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e  Event
			ms int64
		)
		if err := rows.Scan(&e.Sequence, &ms, &e.Kind, &e.Grade, &e.Subject, &e.Amount, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ms)
		out = append(out, e)
	}
	return out, rows.Err()
}
