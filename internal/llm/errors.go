package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoProvider is returned by New when no provider is configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is empty or does not match the
// requested schema.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is a provider that is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off at the token limit.
type ErrMaxTokensExceeded struct {
	Content string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classify maps a provider error onto the retry classes.
type errClass int

const (
	classFatal errClass = iota
	classTransient
	classInvalid
)

func classify(err error) errClass {
	var (
		maxTok *ErrMaxTokensExceeded
		inv    *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return classFatal
	case errors.As(err, &maxTok):
		return classFatal
	case errors.As(err, &inv):
		return classInvalid
	default:
		return classTransient
	}
}

// statusError maps an HTTP status from a provider SDK onto our errors.
func statusError(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
