package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var replySchema = &Schema{
	Name: "test-reply",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required":             []string{"text"},
		"additionalProperties": false,
	},
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func serveJSON(t *testing.T, status int, body any, seen *http.Request) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.Clone(context.Background())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestOpenAIChat(t *testing.T) {
	url := serveJSON(t, http.StatusOK, chatCompletion(`{"text":"Four!"}`, "stop"), nil)
	p, err := NewOpenAIProvider(KeyModelURL{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url + "/v1"})
	require.NoError(t, err)

	resp, err := p.Chat(context.Background(), Request{
		System:    "You are a friendly tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "What is 2+2?"}},
		Schema:    replySchema,
		MaxTokens: 128,
	})
	require.NoError(t, err)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	var out struct{ Text string }
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "Four!", out.Text)
}

func TestOpenAISchemaMismatch(t *testing.T) {
	url := serveJSON(t, http.StatusOK, chatCompletion(`{"words":"Four!"}`, "stop"), nil)
	p, err := NewOpenAIProvider(KeyModelURL{APIKey: "k", BaseURL: url + "/v1"})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), Request{Schema: replySchema})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, `{"words":"Four!"}`, inv.Content)
}

func TestOpenAITruncatedStructuredReply(t *testing.T) {
	url := serveJSON(t, http.StatusOK, chatCompletion(`{"text":"Fo`, "length"), nil)
	p, err := NewOpenAIProvider(KeyModelURL{APIKey: "k", BaseURL: url + "/v1"})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), Request{Schema: replySchema})
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)
}

func TestOpenAIRateLimit(t *testing.T) {
	url := serveJSON(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit_error"},
	}, nil)
	p, err := NewOpenAIProvider(KeyModelURL{APIKey: "k", BaseURL: url + "/v1"})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestOpenRouterUsesBaseURLAndModel(t *testing.T) {
	var seen http.Request
	url := serveJSON(t, http.StatusOK, chatCompletion("Hello!", "stop"), &seen)
	p, err := NewOpenRouterProvider(KeyModelURL{APIKey: "k", Model: "google/gemini-2.0-flash-exp", BaseURL: url + "/api/v1"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	resp, err := p.Chat(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Content)
	assert.Equal(t, "/api/v1/chat/completions", seen.URL.Path)
}

func TestProvidersRequireKeys(t *testing.T) {
	_, err := NewOpenAIProvider(KeyModelURL{})
	assert.Error(t, err)
	_, err = NewOpenRouterProvider(KeyModelURL{})
	assert.Error(t, err)
	_, err = NewAnthropicProvider(KeyModel{})
	assert.Error(t, err)
	_, err = NewGeminiProvider(context.Background(), KeyModel{})
	assert.Error(t, err)
}

func TestAnthropicChat(t *testing.T) {
	url := serveJSON(t, http.StatusOK, map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": "Great job counting!"}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}, nil)
	p, err := NewAnthropicProvider(KeyModel{APIKey: "k", Model: "claude-haiku"}, option.WithBaseURL(url))
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Chat(context.Background(), Request{
		System:    "Be kind.",
		Messages:  []Message{{Role: RoleUser, Content: "I counted to ten"}},
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great job counting!", resp.Content)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
}

func TestAnthropicRateLimit(t *testing.T) {
	url := serveJSON(t, http.StatusTooManyRequests, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
	}, nil)
	p, err := NewAnthropicProvider(KeyModel{APIKey: "k"}, option.WithBaseURL(url), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, MaxTokens: 16})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string", "description": "reply"},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string", "enum": []any{"a", "b"}}},
			"odd":  map[string]any{"type": "tuple"},
		},
		"required": []any{"text"},
	})
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"text"}, s.Required)
	assert.Equal(t, "reply", s.Properties["text"].Description)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, []string{"a", "b"}, s.Properties["tags"].Items.Enum)
	assert.Equal(t, genai.TypeString, s.Properties["odd"].Type)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", resolveModel("gpt-4o-mini", openaiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "custom-model", resolveModel("custom-model", anthropicModels))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, classFatal, classify(context.Canceled))
	assert.Equal(t, classFatal, classify(&ErrMaxTokensExceeded{}))
	assert.Equal(t, classInvalid, classify(&ErrInvalidResponse{Err: errors.New("x")}))
	assert.Equal(t, classTransient, classify(&ErrRateLimit{}))
	assert.Equal(t, classTransient, classify(&ErrProviderUnavailable{}))
}

func TestEmptyUnstructuredReplyIsInvalid(t *testing.T) {
	p := NewMockProvider(MockReply{Content: ""})
	_, err := p.Chat(context.Background(), Request{})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}
