package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
)

// Field names the pipeline generates, in stage order.
const (
	FieldTitle       = "title"
	FieldTags        = "tags"
	FieldDescription = "description"
)

// FieldRequest carries everything a provider needs for one field call.
type FieldRequest struct {
	Field        string
	Prompt       string
	ContextBlock string
	RawInput     string
	Attempt      int
}

// FieldResult is one provider response. Tags is populated only for the
// tags field; Text for the others.
type FieldResult struct {
	Text      string
	Tags      []string
	TokensIn  int
	TokensOut int
	Model     string
}

// ClassifyRequest carries the classifier stage inputs.
type ClassifyRequest struct {
	Prompt       string
	RawText      string
	PersonaLevel int
}

// ClassifyResult is the raw classifier JSON plus token accounting.
type ClassifyResult struct {
	Raw       json.RawMessage
	TokensIn  int
	TokensOut int
	Model     string
}

// FieldGenerator produces one listing field per call.
type FieldGenerator interface {
	GenerateField(ctx context.Context, req FieldRequest) (FieldResult, error)
}

// Classifier produces the raw classifier JSON for a dump.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error)
}

// Client is the full provider surface the pipeline depends on.
type Client interface {
	FieldGenerator
	Classifier
}

// ErrInvalidJSON is returned when a provider answers with output that
// cannot be parsed for a JSON field.
var ErrInvalidJSON = errors.New("llm response is not valid JSON")

// CallProfile fixes model parameters per pipeline stage. One model per
// deployment; there is no fallback model.
type CallProfile struct {
	Temperature      float32
	MaxTokens        int
	PresencePenalty  float32
	FrequencyPenalty float32
}

// CallProfiles holds the per-stage parameter sets used by real providers.
var CallProfiles = map[string]CallProfile{
	"classifier":     {Temperature: 0.3, MaxTokens: 750},
	FieldTitle:       {Temperature: 0.7, MaxTokens: 150, PresencePenalty: 0.3, FrequencyPenalty: 0.2},
	FieldTags:        {Temperature: 0.5, MaxTokens: 100, PresencePenalty: 0.5, FrequencyPenalty: 0.4},
	FieldDescription: {Temperature: 0.85, MaxTokens: 950, PresencePenalty: 0.6, FrequencyPenalty: 0.3},
}

// ProfileFor returns the stage profile, defaulting to the classifier
// profile for unknown stages.
func ProfileFor(stage string) CallProfile {
	if p, ok := CallProfiles[stage]; ok {
		return p
	}
	return CallProfiles["classifier"]
}

// ApproxTokens estimates token usage from whitespace-separated words
// (one token per 0.75 words).
func ApproxTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / 0.75))
}
