package validators

import (
	"fmt"
	"math"
	"strings"
)

// LayerCounts is the tag count per layer for one run.
type LayerCounts struct {
	SEO       int `json:"seo"`
	Occasion  int `json:"occasion"`
	Audience  int `json:"audience"`
	Attribute int `json:"attribute"`
	Unknown   int `json:"unknown"`
}

type layerRange struct {
	min, max int
}

// Target distribution is 5 SEO / 4 occasion / 2 audience / 2 attribute
// (13 tags). Ranges widen each layer by the tolerance, floored at 1.
const (
	layerTolerance     = 3
	expectedTotalTags  = 13
	maxUnknownTags     = 2
	highSeverityExcess = 4
)

var expectedLayerRanges = []struct {
	layer string
	layerRange
}{
	{LayerSEO, layerRange{2, 8}},
	{LayerOccasion, layerRange{1, 7}},
	{LayerAudience, layerRange{1, 5}},
	{LayerAttribute, layerRange{1, 5}},
}

// LayerCountResult is the layer validator's full output.
type LayerCountResult struct {
	IsValid     bool                `json:"isValid"`
	Counts      LayerCounts         `json:"counts"`
	TagsByLayer map[string][]string `json:"tagsByLayer"`
	TotalTags   int                 `json:"totalTags"`
	Warnings    []Warning           `json:"warnings"`
}

// ValidateLayerCount classifies every tag and checks the distribution
// against the target ranges. Each out-of-band layer yields one warning;
// severity escalates when the deviation from the range center exceeds
// the tolerance by more than one.
func ValidateLayerCount(tags []string) LayerCountResult {
	counts := LayerCounts{}
	tagsByLayer := map[string][]string{
		LayerSEO:       {},
		LayerOccasion:  {},
		LayerAudience:  {},
		LayerAttribute: {},
		LayerUnknown:   {},
	}

	for _, tag := range tags {
		layer := ClassifyTag(tag)
		tagsByLayer[layer] = append(tagsByLayer[layer], tag)
		switch layer {
		case LayerSEO:
			counts.SEO++
		case LayerOccasion:
			counts.Occasion++
		case LayerAudience:
			counts.Audience++
		case LayerAttribute:
			counts.Attribute++
		default:
			counts.Unknown++
		}
	}

	var warnings []Warning
	for _, entry := range expectedLayerRanges {
		actual := len(tagsByLayer[entry.layer])
		center := float64(entry.min+entry.max) / 2
		diff := math.Abs(float64(actual) - center)
		if diff <= layerTolerance {
			continue
		}

		severity := SeverityMedium
		if diff > highSeverityExcess {
			severity = SeverityHigh
		}
		direction := "too few"
		if float64(actual) > center {
			direction = "too many"
		}
		expected := int(math.Round(center))

		suggestion := fmt.Sprintf("Consider adding %d more %s tags", int(math.Ceil(center-float64(actual))), entry.layer)
		if float64(actual) > center {
			suggestion = fmt.Sprintf("Consider removing %d %s tags", int(math.Ceil(float64(actual)-center)), entry.layer)
		}

		warnings = append(warnings, Warning{
			Type:       "layer_count",
			Severity:   severity,
			Validator:  ValidatorLayerCount,
			Layer:      entry.layer,
			Message:    fmt.Sprintf("%s layer has %s tags: %d (expected ~%d)", strings.ToUpper(entry.layer), direction, actual, expected),
			Actual:     actual,
			Expected:   expected,
			Tags:       tagsByLayer[entry.layer],
			Suggestion: suggestion,
		})
	}

	if counts.Unknown > maxUnknownTags {
		warnings = append(warnings, Warning{
			Type:       "layer_count",
			Severity:   SeverityMedium,
			Validator:  ValidatorLayerCount,
			Layer:      LayerUnknown,
			Message:    fmt.Sprintf("Too many unclassified tags: %d", counts.Unknown),
			Actual:     counts.Unknown,
			Tags:       tagsByLayer[LayerUnknown],
			Suggestion: "Review unclassified tags and assign to appropriate layers",
		})
	}

	totalTags := len(tags)
	if diff := totalTags - expectedTotalTags; diff > layerTolerance || diff < -layerTolerance {
		severity := SeverityMedium
		if totalTags < expectedTotalTags-layerTolerance {
			severity = SeverityHigh
		}
		suggestion := fmt.Sprintf("Consider removing %d tags to avoid dilution", totalTags-expectedTotalTags)
		if totalTags < expectedTotalTags {
			suggestion = fmt.Sprintf("Add %d more tags to reach optimal count", expectedTotalTags-totalTags)
		}
		warnings = append(warnings, Warning{
			Type:       "layer_count",
			Severity:   severity,
			Validator:  ValidatorLayerCount,
			Message:    fmt.Sprintf("Total tag count is off: %d (expected ~%d)", totalTags, expectedTotalTags),
			Actual:     totalTags,
			Expected:   expectedTotalTags,
			Suggestion: suggestion,
		})
	}

	return LayerCountResult{
		IsValid:     len(warnings) == 0,
		Counts:      counts,
		TagsByLayer: tagsByLayer,
		TotalTags:   totalTags,
		Warnings:    warnings,
	}
}
