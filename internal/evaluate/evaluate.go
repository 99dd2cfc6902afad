// Package evaluate checks submitted answers and builds the feedback shown
// after each one.
package evaluate

import (
	"strconv"
	"strings"

	"github.com/abhisek/playarcade/internal/content"
)

// Explanation is the feedback bundle for one submitted answer.
type Explanation struct {
	Short    string
	Long     string
	WhyWrong string
}

// Result is the outcome of evaluating one submission.
type Result struct {
	IsCorrect   bool
	Explanation Explanation
}

// IsCorrect compares a submission to the canonical answer. Both sides are
// trimmed of surrounding whitespace and then compared exactly, so case
// matters: " Paris " is correct for "Paris", "paris" is not. Voice input
// goes through MatchSpoken first, which resolves it to an option's exact
// text.
func IsCorrect(submitted, answer string) bool {
	return strings.TrimSpace(submitted) == strings.TrimSpace(answer)
}

// Evaluate checks submitted against q and explains the result. It has no
// side effects.
func Evaluate(q content.Question, submitted string) Result {
	return Result{
		IsCorrect:   IsCorrect(submitted, q.Answer),
		Explanation: Explain(q, submitted),
	}
}

// ArithmeticHint is appended to templated feedback for numeric questions.
const ArithmeticHint = " Also re-check arithmetic: small mistakes in +, -, ×, ÷ are common."

// Explain builds feedback for a submission, preferring the question's own
// explanation over the subject templates.
func Explain(q content.Question, submitted string) Explanation {
	answer := q.Answer
	if e := q.Explanation; e != nil {
		if !e.Structured() {
			return Explanation{
				Short:    "Correct answer: " + answer,
				Long:     e.Text,
				WhyWrong: e.Text,
			}
		}
		long := e.Correct
		if long == "" {
			long = "Explanation not provided."
		}
		whyWrong := e.WhyWrong[submitted]
		if whyWrong == "" {
			whyWrong = e.WhyWrong[strings.TrimSpace(submitted)]
		}
		if whyWrong == "" {
			whyWrong = e.Correct
		}
		if whyWrong == "" {
			whyWrong = "That choice is incorrect because it does not match the answer."
		}
		return Explanation{
			Short:    "Correct: " + answer,
			Long:     long,
			WhyWrong: whyWrong,
		}
	}

	topic := firstNonEmpty(q.Topic, q.Chapter, q.Subject, "topic")
	rule := RuleFor(q.Subject)
	ex := Explanation{
		Short:    "Correct answer: " + answer,
		Long:     rule.Long(topic),
		WhyWrong: rule.WhyWrong(topic),
	}
	if isNumeric(submitted) || isNumeric(answer) {
		ex.WhyWrong += ArithmeticHint
	}
	return ex
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
