package validators

// Quality score deductions per warning severity. Unknown severities
// deduct like low.
const (
	deductionHigh   = 20
	deductionMedium = 10
	deductionLow    = 5
)

// QualityScore reduces a validation result to a 0-100 score: 100 minus
// a per-warning deduction, clamped at zero. A run with no validation at
// all scores a clean 100.
func QualityScore(result *ValidationResult) int {
	if result == nil {
		return 100
	}
	score := 100
	for _, w := range result.Warnings {
		switch w.Severity {
		case SeverityHigh:
			score -= deductionHigh
		case SeverityMedium:
			score -= deductionMedium
		default:
			score -= deductionLow
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
