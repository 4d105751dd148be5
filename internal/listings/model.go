package listings

import (
	"time"

	"listing-backend/internal/listings/validators"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ClassifierContext is the persona profile derived from the raw dump.
// It steers every downstream field generation.
type ClassifierContext struct {
	GiftMode        bool     `json:"gift_mode"`
	Audience        []string `json:"audience"`
	FallbackProfile string   `json:"fallback_profile"`
	AllowHandmade   bool     `json:"allow_handmade"`
	RetryReason     string   `json:"retry_reason,omitempty"`
	Notes           []string `json:"notes,omitempty"`
}

// Fields holds the generated listing content.
type Fields struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// Options control a single generation request.
type Options struct {
	PersonaLevel   int    `json:"personaLevel"`
	GiftMode       *bool  `json:"giftMode,omitempty"`
	AllowHandmade  *bool  `json:"allowHandmade,omitempty"`
	RunID          string `json:"runId,omitempty"`
	BypassHardFail bool   `json:"bypassHardFail,omitempty"`
}

// StageUsage records token and cost accounting for one pipeline stage.
type StageUsage struct {
	Stage     string  `json:"stage"`
	Model     string  `json:"model"`
	TokensIn  int     `json:"tokensIn"`
	TokensOut int     `json:"tokensOut"`
	CostUSD   float64 `json:"costUsd"`
}

// RunSummary aggregates usage across all stages of a run.
type RunSummary struct {
	Stages     []StageUsage `json:"stages"`
	TokensIn   int          `json:"tokensIn"`
	TokensOut  int          `json:"tokensOut"`
	CostUSD    float64      `json:"costUsd"`
	DurationMs float64      `json:"durationMs"`
}

// Run is a persisted generation run.
type Run struct {
	ID           string                       `json:"id"`
	UserID       string                       `json:"userId"`
	Status       string                       `json:"status"`
	RawText      string                       `json:"-"`
	Options      Options                      `json:"options"`
	Classifier   *ClassifierContext           `json:"classifier,omitempty"`
	Fields       *Fields                      `json:"fields,omitempty"`
	Validation   *validators.ValidationResult `json:"validation,omitempty"`
	QualityScore int                          `json:"qualityScore"`
	Summary      *RunSummary                  `json:"summary,omitempty"`
	ErrorCode    string                       `json:"errorCode,omitempty"`
	ErrorMessage string                       `json:"errorMessage,omitempty"`
	CreatedAt    time.Time                    `json:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt"`
}
