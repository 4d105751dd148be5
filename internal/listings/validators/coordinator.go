package validators

import (
	"fmt"
	"time"
)

// RunAll executes every validator against the output and folds the
// findings into one ValidationResult. Validators only append warnings;
// they never block, so a single run always produces a complete picture.
// A panicking validator is converted into a high-severity
// validation_error warning rather than crashing the run.
func RunAll(output Output, ctx Context) ValidationResult {
	start := time.Now()
	var warnings []Warning
	summaries := make(map[string]ValidatorSummary)

	func() {
		defer func() {
			if r := recover(); r != nil {
				warnings = append(warnings, Warning{
					Type:      "validation_error",
					Severity:  SeverityHigh,
					Validator: ValidatorCoordinator,
					Message:   fmt.Sprintf("Validator error: %v", r),
				})
			}
		}()

		if output.HasTags {
			dup := FindDuplicateStems(output.Tags)
			warnings = append(warnings, dup.Warnings...)
			issues := make([]string, len(dup.Warnings))
			for i, w := range dup.Warnings {
				issues[i] = w.Reason
			}
			summaries["duplicateStems"] = ValidatorSummary{
				Passed:       dup.IsValid,
				WarningCount: len(dup.Warnings),
				Issues:       issues,
			}

			layer := ValidateLayerCount(output.Tags)
			warnings = append(warnings, layer.Warnings...)
			counts := layer.Counts
			summaries["layerCount"] = ValidatorSummary{
				Passed:       layer.IsValid,
				WarningCount: len(layer.Warnings),
				Distribution: &counts,
				TotalTags:    layer.TotalTags,
			}
		} else {
			warnings = append(warnings, Warning{
				Type:      "validation_error",
				Severity:  SeverityMedium,
				Validator: ValidatorDuplicateStem,
				Message:   "Tags not provided or not in array format",
			})
			summaries["duplicateStems"] = ValidatorSummary{WarningCount: 1, Issues: []string{"missing_tags"}}
			summaries["layerCount"] = ValidatorSummary{WarningCount: 1, Issues: []string{"missing_tags"}}
		}

		if output.HasTitle {
			title := ValidateTitleTemplate(output.Title, ctx)
			warnings = append(warnings, title.Warnings...)
			summaries["titleTemplate"] = ValidatorSummary{
				Passed:         title.IsValid,
				WarningCount:   len(title.Warnings),
				Length:         title.Length,
				MatchesPattern: title.MatchesPattern,
			}
		} else {
			warnings = append(warnings, Warning{
				Type:      "validation_error",
				Severity:  SeverityHigh,
				Validator: ValidatorTitleTemplate,
				Message:   "Title not provided or not a string",
			})
			summaries["titleTemplate"] = ValidatorSummary{WarningCount: 1, Issues: []string{IssueMissingTitle}}
		}

		consistency := CheckCrossFieldConsistency(output, ctx)
		warnings = append(warnings, consistency...)
		summaries["consistency"] = ValidatorSummary{
			Passed:       len(consistency) == 0,
			WarningCount: len(consistency),
		}
	}()

	processingMs := float64(time.Since(start).Microseconds()) / 1000
	if processingMs < 1 {
		processingMs = 1
	}

	metrics := Metrics{TotalWarnings: len(warnings), ProcessingTimeMs: processingMs}
	for _, w := range warnings {
		switch w.Severity {
		case SeverityHigh:
			metrics.HighSeverityWarnings++
		case SeverityMedium:
			metrics.MediumSeverityWarnings++
		default:
			metrics.LowSeverityWarnings++
		}
	}

	return ValidationResult{
		IsValid:           metrics.HighSeverityWarnings == 0,
		IsSoftFail:        len(warnings) > 0 && metrics.HighSeverityWarnings == 0,
		Warnings:          warnings,
		ValidationResults: summaries,
		Metrics:           metrics,
		Timestamp:         time.Now().UTC(),
	}
}
