package llm

import (
	"context"
	"sync"
)

// MockReply is one canned reply of a MockProvider.
type MockReply struct {
	Content string
	Usage   Usage
	Err     error
}

// MockProvider replays canned replies in order and records every request.
// With the queue empty it reports the provider unavailable.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Chat(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: "end"})
}

func (m *MockProvider) ModelID() string { return "mock" }

// Add queues more replies.
func (m *MockProvider) Add(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
