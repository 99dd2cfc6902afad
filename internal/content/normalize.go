package content

import (
	"strings"

	"github.com/abhisek/playarcade/internal/shuffle"
)

// PrepareQuestion returns a copy of q ready to be played: the answer is
// always among the options, options are de-duplicated case-insensitively
// and their order is shuffled. When an option differs from the answer only
// by case, the answer's spelling wins.
func PrepareQuestion(src shuffle.Source, q Question) Question {
	answer := strings.TrimSpace(q.Answer)
	seen := map[string]bool{strings.ToLower(answer): true}
	opts := []string{q.Answer}
	for _, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		opts = append(opts, o)
	}
	shuffle.Slice(src, opts)

	out := q
	out.Options = opts
	return out
}

// PrepareQuestions applies PrepareQuestion to each question.
func PrepareQuestions(src shuffle.Source, qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = PrepareQuestion(src, q)
	}
	return out
}
