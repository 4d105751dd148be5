package validators

import (
	"fmt"
	"strings"
)

var consistencyProductTypes = []string{"ring", "necklace", "bracelet", "earrings", "pendant", "jewelry"}

var consistencyGiftWords = []string{"gift", "present", "for"}

// CheckCrossFieldConsistency compares title, tags and classifier context
// against each other. Findings never exceed medium severity; consistency
// issues alone cannot hard-fail a run.
func CheckCrossFieldConsistency(output Output, ctx Context) []Warning {
	var warnings []Warning

	if output.Title != "" && output.HasTags {
		titleWords := strings.Fields(strings.ToLower(output.Title))
		tagWords := make([]string, len(output.Tags))
		for i, tag := range output.Tags {
			tagWords[i] = strings.ToLower(tag)
		}

		titleType := firstProductType(titleWords)
		tagType := firstProductType(tagWords)
		if titleType != "" && tagType != "" && titleType != tagType {
			warnings = append(warnings, Warning{
				Type:       "consistency",
				Severity:   SeverityMedium,
				Validator:  ValidatorConsistency,
				Message:    fmt.Sprintf("Product type mismatch between title (%s) and tags (%s)", titleType, tagType),
				Suggestion: "Ensure title and tags reference the same product type",
			})
		}
	}

	if ctx.GiftMode {
		if output.Title != "" && !containsAny(strings.ToLower(output.Title), consistencyGiftWords) {
			warnings = append(warnings, Warning{
				Type:       "consistency",
				Severity:   SeverityMedium,
				Validator:  ValidatorConsistency,
				Message:    "Gift mode enabled but title lacks gift-focused language",
				Suggestion: "Add gift-related words to title when gift_mode is true",
			})
		}
		if output.HasTags {
			hasGiftTag := false
			for _, tag := range output.Tags {
				if containsAny(strings.ToLower(tag), consistencyGiftWords) {
					hasGiftTag = true
					break
				}
			}
			if !hasGiftTag {
				warnings = append(warnings, Warning{
					Type:       "consistency",
					Severity:   SeverityLow,
					Validator:  ValidatorConsistency,
					Message:    "Gift mode enabled but tags lack gift/occasion focus",
					Suggestion: "Include gift or occasion-related tags when gift_mode is true",
				})
			}
		}
	}

	if len(ctx.Audience) > 0 {
		lowerTitle := strings.ToLower(output.Title)
		found := false
		for _, token := range ctx.Audience {
			token = strings.ToLower(token)
			if token == "" {
				continue
			}
			if output.Title != "" && strings.Contains(lowerTitle, token) {
				found = true
				break
			}
			for _, tag := range output.Tags {
				if strings.Contains(strings.ToLower(tag), token) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			warnings = append(warnings, Warning{
				Type:       "consistency",
				Severity:   SeverityLow,
				Validator:  ValidatorConsistency,
				Message:    fmt.Sprintf("Audience context (%s) not reflected in title or tags", strings.Join(ctx.Audience, ", ")),
				Audience:   ctx.Audience,
				Suggestion: "Consider incorporating audience references for better targeting",
			})
		}
	}

	return warnings
}

// firstProductType returns the first known product type that appears as
// a substring of any word, matching word order of the type list.
func firstProductType(words []string) string {
	for _, productType := range consistencyProductTypes {
		for _, word := range words {
			if strings.Contains(word, productType) {
				return productType
			}
		}
	}
	return ""
}
