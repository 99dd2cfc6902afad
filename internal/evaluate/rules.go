package evaluate

import (
	"fmt"
	"strings"
)

// Rule is the templated feedback for one subject family.
type Rule struct {
	Name     string
	long     string
	whyWrong string
}

// Long fills the rule's explanation template with topic.
func (r Rule) Long(topic string) string { return fill(r.long, topic) }

// WhyWrong fills the rule's rebuttal template with topic.
func (r Rule) WhyWrong(topic string) string { return fill(r.whyWrong, topic) }

func fill(tmpl, topic string) string {
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	return fmt.Sprintf(strings.ReplaceAll(tmpl, "%s", "%[1]s"), topic)
}

var (
	mathsRule = Rule{
		Name:     "maths",
		long:     "Because this is a %s problem. The correct result follows standard %s rules. Re-check operations step-by-step (order of operations, simplification, or formula).",
		whyWrong: "The selected option does not follow the %s rule. Review calculations and simplify carefully.",
	}
	scienceRule = Rule{
		Name:     "science",
		long:     "This relates to %s. The correct answer matches the scientific principle involved (e.g., property, process or definition).",
		whyWrong: "The selected option conflicts with the basic concept of %s. Re-read the principle and compare each option.",
	}
	englishRule = Rule{
		Name:     "english",
		long:     "This is about %s. The correct answer fits the grammar/meaning conventions (tense, preposition, or idiom).",
		whyWrong: "The chosen option doesn't match the grammar or intended meaning here. Check usage and sentence structure.",
	}
	computerRule = Rule{
		Name:     "computer",
		long:     "This question covers %s. The correct option follows how computers/systems actually behave or how the technology is defined.",
		whyWrong: "The chosen option is not accurate for how this computer concept works in real systems.",
	}
	socialRule = Rule{
		Name:     "social science",
		long:     "This belongs to %s. The correct answer aligns with historical/geographical/civic facts or definitions.",
		whyWrong: "That option contradicts the factual/historical context for %s. Re-check dates/names/definitions.",
	}
	genericRule = Rule{
		Name:     "generic",
		long:     "This question covers %s. The correct answer is chosen because it follows the canonical definition or rule for that topic.",
		whyWrong: "That choice doesn't match the definition or rule; compare it to the correct option and identify the mismatch.",
	}
)

// rules maps every recognised subject spelling to its rule.
var rules = map[string]Rule{
	"maths":          mathsRule,
	"math":           mathsRule,
	"science":        scienceRule,
	"english":        englishRule,
	"computer":       computerRule,
	"social_science": socialRule,
	"social science": socialRule,
}

// RuleFor returns the feedback rule for a subject, case-insensitively,
// falling back to the generic rule.
func RuleFor(subject string) Rule {
	if r, ok := rules[strings.ToLower(strings.TrimSpace(subject))]; ok {
		return r
	}
	return genericRule
}
