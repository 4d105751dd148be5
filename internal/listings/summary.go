package listings

import "math"

// USD per 1K tokens by model. Unknown models cost nothing, so accounting
// degrades gracefully when a provider reports an unexpected model name.
var pricePer1K = map[string]float64{
	"gpt-4o":           0.01,
	"gemini-2.0-flash": 0.0004,
	"dummy":            0,
}

// EstimateCost returns the estimated USD cost of a call.
func EstimateCost(model string, tokensIn, tokensOut int) float64 {
	price, ok := pricePer1K[model]
	if !ok {
		return 0
	}
	return float64(tokensIn+tokensOut) / 1000 * price
}

func newRunSummary(stages []StageUsage, durationMs float64) *RunSummary {
	s := &RunSummary{Stages: stages, DurationMs: durationMs}
	for _, st := range stages {
		s.TokensIn += st.TokensIn
		s.TokensOut += st.TokensOut
		s.CostUSD += st.CostUSD
	}
	s.CostUSD = math.Round(s.CostUSD*10000) / 10000
	return s
}
