package store

import (
	"context"
	"time"
)

// KV is the string key-value contract the progress ledger persists
// through. Get reports ok=false for absent keys rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Kind   string    // exact kind match when set
}

// Event kinds.
const (
	KindXP         = "xp"
	KindLevel      = "level_solved"
	KindLLMRequest = "llm_request"
)

// Event is one append-only journal row.
type Event struct {
	Sequence  int64
	Timestamp time.Time
	Kind      string
	Grade     string
	Subject   string
	Amount    int
	Detail    string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and query access to the play journal.
type EventRepo interface {
	// Append records an event and returns its sequence number.
	Append(ctx context.Context, e Event) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// Query returns events newest first.
	Query(ctx context.Context, opts QueryOpts) ([]Event, error)
}
