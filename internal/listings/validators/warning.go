package validators

import "time"

// Severity grades how strongly a warning counts against a listing.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Validator names carried on warnings and used for fail-policy lookups.
const (
	ValidatorDuplicateStem = "duplicateStemValidator"
	ValidatorLayerCount    = "layerCountValidator"
	ValidatorTitleTemplate = "titleTemplateValidator"
	ValidatorConsistency   = "consistencyValidator"
	ValidatorCoordinator   = "validatorCoordinator"
)

// Warning is a single validator finding. A warning is produced by exactly
// one validator and never mutated afterwards.
type Warning struct {
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Validator  string   `json:"validator,omitempty"`
	Field      string   `json:"field,omitempty"`
	Issue      string   `json:"issue,omitempty"`
	Layer      string   `json:"layer,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
	Pattern    string   `json:"pattern,omitempty"`
	Actual     int      `json:"actual,omitempty"`
	Expected   int      `json:"expected,omitempty"`
	Missing    []string `json:"missing,omitempty"`
	Audience   []string `json:"audience,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidatorSummary is the per-validator rollup stored on a ValidationResult.
type ValidatorSummary struct {
	Passed         bool         `json:"passed"`
	WarningCount   int          `json:"warningCount"`
	Issues         []string     `json:"issues,omitempty"`
	Distribution   *LayerCounts `json:"distribution,omitempty"`
	TotalTags      int          `json:"totalTags,omitempty"`
	Length         int          `json:"length,omitempty"`
	MatchesPattern bool         `json:"matchesPattern,omitempty"`
}

// Metrics aggregates warning counts and processing latency for one run.
type Metrics struct {
	TotalWarnings          int     `json:"totalWarnings"`
	HighSeverityWarnings   int     `json:"highSeverityWarnings"`
	MediumSeverityWarnings int     `json:"mediumSeverityWarnings"`
	LowSeverityWarnings    int     `json:"lowSeverityWarnings"`
	ProcessingTimeMs       float64 `json:"processingTimeMs"`
}

// ValidationResult is the coordinator's verdict for one generation run.
// Created once per run and read-only afterwards.
type ValidationResult struct {
	IsValid           bool                        `json:"isValid"`
	IsSoftFail        bool                        `json:"isSoftFail"`
	Warnings          []Warning                   `json:"warnings"`
	ValidationResults map[string]ValidatorSummary `json:"validationResults"`
	Metrics           Metrics                     `json:"metrics"`
	Timestamp         time.Time                   `json:"timestamp"`
}

// Context carries the classifier-derived signals validators check against.
type Context struct {
	GiftMode        bool     `json:"gift_mode"`
	AllowHandmade   bool     `json:"allow_handmade"`
	Audience        []string `json:"audience,omitempty"`
	FallbackProfile string   `json:"fallback_profile,omitempty"`
}

// Output is the generated field set under validation.
type Output struct {
	Title       string
	Tags        []string
	HasTags     bool
	Description string
	HasTitle    bool
}
