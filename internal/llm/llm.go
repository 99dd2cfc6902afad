// Package llm sends chat requests to hosted language models. The tutor
// uses it to answer a child's questions; every provider sits behind the
// same Provider interface and is wrapped with retries and request logging.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider sends one chat request and returns the model's reply.
type Provider interface {
	Chat(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider calls.
	ModelID() string
}

// Request is one chat turn.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for a JSON reply conforming to it. The reply
	// is validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one entry of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured replies.
type Schema struct {
	Name        string // kebab-case, e.g. "tutor-reply"
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the reply text, or the validated JSON document when the
	// request carried a Schema.
	Content    string
	Usage      Usage
	Model      string
	StopReason string // "end", "max_tokens" or "error"
}

// Decode unmarshals a structured reply into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Content), v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode reply: %w", err)}
	}
	return nil
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// resolveModel maps a short model alias to a provider model ID. Unknown
// names are used as given.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
