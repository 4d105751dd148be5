package validators

import "testing"

func TestQualityScoreDeductions(t *testing.T) {
	result := &ValidationResult{Warnings: []Warning{
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
		{Severity: SeverityLow},
	}}
	if got := QualityScore(result); got != 65 {
		t.Fatalf("score = %d, want 65", got)
	}
}

func TestQualityScoreUnknownSeverityCountsAsLow(t *testing.T) {
	result := &ValidationResult{Warnings: []Warning{{Severity: "weird"}}}
	if got := QualityScore(result); got != 95 {
		t.Fatalf("score = %d, want 95", got)
	}
}

func TestQualityScoreFloorsAtZero(t *testing.T) {
	warnings := make([]Warning, 8)
	for i := range warnings {
		warnings[i] = Warning{Severity: SeverityHigh}
	}
	if got := QualityScore(&ValidationResult{Warnings: warnings}); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestQualityScoreNoValidation(t *testing.T) {
	if got := QualityScore(nil); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}
	if got := QualityScore(&ValidationResult{}); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}
}
