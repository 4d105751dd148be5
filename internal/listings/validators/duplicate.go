package validators

import "fmt"

// DuplicateStemResult is the duplicate-stem validator's full output.
type DuplicateStemResult struct {
	IsValid  bool      `json:"isValid"`
	Warnings []Warning `json:"warnings"`
}

// FindDuplicateStems compares every tag pair and emits one warning per
// similar pair. Exact matches are high severity; stem and fuzzy matches
// are medium. Pairs are visited in input order so output is stable.
func FindDuplicateStems(tags []string) DuplicateStemResult {
	var warnings []Warning
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			verdict := AreSimilar(tags[i], tags[j])
			if !verdict.Similar {
				continue
			}
			severity := SeverityMedium
			if verdict.Reason == ReasonExactMatch {
				severity = SeverityHigh
			}
			warnings = append(warnings, Warning{
				Type:       "duplicate_stem",
				Severity:   severity,
				Validator:  ValidatorDuplicateStem,
				Message:    fmt.Sprintf("Tags %q and %q are too similar (%s)", tags[i], tags[j], verdict.Reason),
				Tags:       []string{tags[i], tags[j]},
				Reason:     verdict.Reason,
				Similarity: verdict.Similarity,
				Suggestion: fmt.Sprintf("Consider replacing %q with a distinct tag", tags[j]),
			})
		}
	}
	return DuplicateStemResult{IsValid: len(warnings) == 0, Warnings: warnings}
}
