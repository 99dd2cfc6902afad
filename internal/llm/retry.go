package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. An invalid reply is retried once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	// sleep waits for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with cfg's retry policy.
func WithRetry(p Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Chat(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidRetried := false

	var lastErr error
	for attempt := range attempts {
		resp, err := r.inner.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case classFatal:
			return nil, err
		case classInvalid:
			if invalidRetried {
				return nil, err
			}
			invalidRetried = true
		}
		if attempt == attempts-1 {
			break
		}
		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if limit := float64(r.config.MaxWait); limit > 0 && wait > limit {
		wait = limit
	}
	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
