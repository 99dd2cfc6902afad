// Package tutor answers a child's free-form questions in the language they
// typed or spoke. Replies come from an LLM when one is configured and from a
// short canned answer otherwise.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/abhisek/playarcade/internal/llm"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("empty question")

// Greeting is the tutor's opening line.
const Greeting = "Hi! I am your Voice Tutor. Ask me anything 🎤"

const (
	maxHistory   = 10
	maxTokens    = 400
	defaultLimit = 30 * time.Second
)

var canned = map[language.Tag]string{
	English:   "Here is your answer explained clearly.",
	Hindi:     "यह रहा आपका उत्तर, सरल तरीके से समझाया गया है।",
	Tamil:     "இது உங்கள் கேள்விக்கு எளிய விளக்கம்.",
	Malayalam: "ഇതാ നിങ്ങളുടെ ചോദ്യത്തിന് ഒരു സരളമായ വിശദീകരണം.",
}

var replySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "A short answer for a child.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "The answer, two or three short sentences.",
			},
		},
		"required":             []string{"reply"},
		"additionalProperties": false,
	},
}

// Reply is one tutor answer.
type Reply struct {
	Text string
	Lang language.Tag

	// Offline is set when the canned answer was used.
	Offline bool
}

// Tutor keeps one conversation. It is safe for concurrent use, although
// questions are answered one at a time.
type Tutor struct {
	mu       sync.Mutex
	provider llm.Provider
	logger   *zap.Logger
	timeout  time.Duration
	grade    string
	history  []llm.Message
}

type Option func(*Tutor)

func WithLogger(l *zap.Logger) Option { return func(t *Tutor) { t.logger = l } }

// WithTimeout bounds each model request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(t *Tutor) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithGrade tells the model which school grade the child is in.
func WithGrade(grade string) Option { return func(t *Tutor) { t.grade = grade } }

// New creates a tutor. A nil provider answers every question offline.
func New(provider llm.Provider, opts ...Option) *Tutor {
	t := &Tutor{provider: provider, logger: zap.NewNop(), timeout: defaultLimit}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Ask answers question. Model failures fall back to the canned answer and
// are only logged; the returned error is ErrEmptyQuestion or a context
// error.
func (t *Tutor) Ask(ctx context.Context, question string) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, ErrEmptyQuestion
	}
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	lang := Detect(question)
	if t.provider == nil {
		return offline(lang), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	text, err := t.ask(ctx, question, lang)
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		t.logger.Warn("tutor falling back to canned reply",
			zap.String("lang", lang.String()),
			zap.Error(err),
		)
		return offline(lang), nil
	}

	t.history = append(t.history,
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: text},
	)
	if len(t.history) > maxHistory {
		t.history = t.history[len(t.history)-maxHistory:]
	}
	return Reply{Text: text, Lang: lang}, nil
}

func (t *Tutor) ask(ctx context.Context, question string, lang language.Tag) (string, error) {
	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, "tutor"), t.timeout)
	defer cancel()

	msgs := append(append([]llm.Message(nil), t.history...), llm.Message{Role: llm.RoleUser, Content: question})
	resp, err := t.provider.Chat(ctx, llm.Request{
		System:      t.systemPrompt(lang),
		Messages:    msgs,
		Schema:      replySchema,
		MaxTokens:   maxTokens,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	if out.Reply = strings.TrimSpace(out.Reply); out.Reply == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("blank reply")}
	}
	return out.Reply, nil
}

func (t *Tutor) systemPrompt(lang language.Tag) string {
	var b strings.Builder
	b.WriteString("You are a cheerful tutor for a school child. ")
	if t.grade != "" {
		fmt.Fprintf(&b, "The child is in %s. ", t.grade)
	}
	fmt.Fprintf(&b, "Answer in %s using simple words and at most three short sentences. ", LanguageName(lang))
	b.WriteString("If the question is not about learning, gently steer back to school topics.")
	return b.String()
}

// Reset forgets the conversation.
func (t *Tutor) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = nil
}

func offline(lang language.Tag) Reply {
	text, ok := canned[lang]
	if !ok {
		text = canned[English]
	}
	return Reply{Text: text + " 😊", Lang: lang, Offline: true}
}
