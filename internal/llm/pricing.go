package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost is the USD cost of one request.
func (c ModelCost) Cost(in, out int) float64 {
	return float64(in)*c.InputPerMTok/1_000_000 + float64(out)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(model string) *ModelCost {
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}

// Only the models the tutor's aliases resolve to, plus a few common picks.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gpt-4.1-mini":              {0.4, 1.6},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.0-pro":            {1.25, 10},
	"gemini-2.5-flash":          {0.3, 2.5},
}
