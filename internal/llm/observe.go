package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/store"
)

// ObservedProvider logs every request and appends it to the play journal.
type ObservedProvider struct {
	inner   Provider
	name    string
	logger  *zap.Logger
	journal store.EventRepo
}

// WithObserver wraps p. A nil journal only logs.
func WithObserver(p Provider, name string, logger *zap.Logger, journal store.EventRepo) *ObservedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObservedProvider{inner: p, name: name, logger: logger, journal: journal}
}

func (o *ObservedProvider) ModelID() string { return o.inner.ModelID() }

func (o *ObservedProvider) Chat(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := o.inner.Chat(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:  o.name,
		Model:     o.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if cost := LookupCost(data.Model); cost != nil {
		fields = append(fields, zap.Float64("cost_usd", cost.Cost(data.InputTokens, data.OutputTokens)))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		o.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		o.logger.Debug("llm request", fields...)
	}

	if o.journal != nil {
		if jerr := o.journal.AppendLLMRequest(ctx, data); jerr != nil {
			o.logger.Warn("journal llm request", zap.Error(jerr))
		}
	}
	return resp, err
}
