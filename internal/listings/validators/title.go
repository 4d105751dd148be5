package validators

import (
	"fmt"
	"regexp"
	"strings"
)

// Title issue codes. The missing/length/pattern codes map to hard
// failures in the fail-policy table.
const (
	IssueMissingTitle     = "missing_title"
	IssueTooShort         = "too_short"
	IssueTooLong          = "too_long"
	IssueSuboptimalLength = "suboptimal_length"
	IssueForbiddenPattern = "forbidden_pattern"
	IssueForbiddenHand    = "forbidden_handmade"
	IssueMissingElements  = "missing_elements"
	IssuePatternMismatch  = "pattern_mismatch"
	IssueMissingGiftHook  = "missing_gift_hook"
	IssueMissingAudience  = "missing_audience"
)

const (
	titleMinLength        = 15
	titleMaxLength        = 160
	titleOptimalMinLength = 35
	titleOptimalMaxLength = 85
)

// High-converting title structures; matching any one of them passes the
// template check.
var titlePatterns = []*regexp.Regexp{
	// [Product] [Style/Material] [Occasion/Benefit]
	regexp.MustCompile(`(?i)^[A-Z][a-zA-Z\s,'-]+\s+(for|gift|present|perfect|handmade|custom|personalized|unique)`),
	// [Product] [Gift Hook] [Recipient]
	regexp.MustCompile(`(?i)^[A-Z][a-zA-Z\s,'-]+\s+(gift|present)\s+(for|to)\s+[a-zA-Z\s]+`),
	// [Brand/Style] [Product] [Benefit]
	regexp.MustCompile(`(?i)^[A-Z][a-zA-Z\s,'-]+\s+[a-zA-Z\s,'-]+\s+(jewelry|ring|necklace|bracelet|earrings)`),
	// [Adjective] [Product] [Context]
	regexp.MustCompile(`(?i)^(Handmade|Custom|Personalized|Unique|Vintage|Modern|Elegant|Beautiful)\s+[a-zA-Z\s,'-]+`),
}

var titleForbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(cheap|discount|sale|buy now|click here|free shipping)\b`),
	regexp.MustCompile(`[!]{2,}|[?]{2,}|[.]{3,}`),
	regexp.MustCompile(`(?i)\b(SEO|keywords|tags|etsy)\b`),
	regexp.MustCompile(`^\s*[a-z]`),
	regexp.MustCompile(`\s{2,}`),
}

var titleHandmadeRe = regexp.MustCompile(`(?i)\bhandmade\b`)

var (
	titleProductTypes  = []string{"ring", "necklace", "bracelet", "earrings", "pendant", "charm", "jewelry", "jewellery"}
	titleGiftHooks     = []string{"gift", "present", "perfect", "for", "surprise", "special"}
	titleAudienceWords = []string{"mom", "dad", "mother", "father", "wife", "husband", "her", "him", "women", "men"}
)

// TitleTemplateResult is the title validator's full output.
type TitleTemplateResult struct {
	IsValid        bool      `json:"isValid"`
	Warnings       []Warning `json:"warnings"`
	Length         int       `json:"length"`
	MatchesPattern bool      `json:"matchesPattern"`
}

// ValidateTitleTemplate checks length bands, forbidden patterns, the
// conditional handmade rule, required product-type words, template
// patterns, and the gift/audience context hints. A title passes when it
// collects no high-severity warnings.
func ValidateTitleTemplate(title string, ctx Context) TitleTemplateResult {
	if strings.TrimSpace(title) == "" {
		return TitleTemplateResult{
			IsValid: false,
			Warnings: []Warning{{
				Type:       "title_template",
				Severity:   SeverityHigh,
				Validator:  ValidatorTitleTemplate,
				Issue:      IssueMissingTitle,
				Message:    "Title is required and must be a non-empty string",
				Suggestion: "Provide a valid title string",
			}},
		}
	}

	var warnings []Warning
	cleanTitle := strings.TrimSpace(title)
	length := len(cleanTitle)

	switch {
	case length < titleMinLength:
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityHigh,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueTooShort,
			Message:    fmt.Sprintf("Title too short: %d characters (minimum %d)", length, titleMinLength),
			Actual:     length,
			Suggestion: "Add more descriptive words or benefits",
		})
	case length > titleMaxLength:
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityMedium,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueTooLong,
			Message:    fmt.Sprintf("Title too long: %d characters (maximum %d)", length, titleMaxLength),
			Actual:     length,
			Suggestion: "Shorten title while keeping key benefits",
		})
	case length < titleOptimalMinLength || length > titleOptimalMaxLength:
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityLow,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueSuboptimalLength,
			Message:    fmt.Sprintf("Title length could be optimized: %d characters (optimal %d-%d)", length, titleOptimalMinLength, titleOptimalMaxLength),
			Actual:     length,
			Suggestion: "Consider adjusting length for better SEO",
		})
	}

	for _, pattern := range titleForbiddenPatterns {
		if pattern.MatchString(cleanTitle) {
			warnings = append(warnings, Warning{
				Type:       "title_template",
				Severity:   SeverityHigh,
				Validator:  ValidatorTitleTemplate,
				Issue:      IssueForbiddenPattern,
				Message:    fmt.Sprintf("Title contains forbidden pattern: %s", pattern.String()),
				Pattern:    pattern.String(),
				Suggestion: "Remove or rephrase the flagged content",
			})
		}
	}

	if !ctx.AllowHandmade && titleHandmadeRe.MatchString(cleanTitle) {
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityHigh,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueForbiddenHand,
			Message:    `Title contains "handmade" but allow_handmade flag is false`,
			Suggestion: `Use alternatives like "artisan", "hand-crafted", "crafted", or enable allow_handmade flag`,
		})
	}

	lowerTitle := strings.ToLower(cleanTitle)
	if !containsAny(lowerTitle, titleProductTypes) {
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityMedium,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueMissingElements,
			Message:    "Title missing required elements: productType",
			Missing:    []string{"productType"},
			Suggestion: "Include product type (ring, necklace, etc.) in title",
		})
	}

	matchesPattern := false
	for _, pattern := range titlePatterns {
		if pattern.MatchString(cleanTitle) {
			matchesPattern = true
			break
		}
	}
	if !matchesPattern {
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityMedium,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssuePatternMismatch,
			Message:    "Title does not follow recommended template patterns",
			Suggestion: "Consider using format: [Product] [Style/Material] [Gift Hook/Benefit]",
		})
	}

	if ctx.GiftMode && !containsAny(lowerTitle, titleGiftHooks) {
		warnings = append(warnings, Warning{
			Type:       "title_template",
			Severity:   SeverityMedium,
			Validator:  ValidatorTitleTemplate,
			Issue:      IssueMissingGiftHook,
			Message:    "Gift mode enabled but title lacks gift-focused language",
			Suggestion: `Add words like "gift", "present", "perfect for", etc.`,
		})
	}

	if len(ctx.Audience) > 0 {
		hasAudience := containsAny(lowerTitle, ctx.Audience) || containsAny(lowerTitle, titleAudienceWords)
		if !hasAudience {
			warnings = append(warnings, Warning{
				Type:       "title_template",
				Severity:   SeverityLow,
				Validator:  ValidatorTitleTemplate,
				Issue:      IssueMissingAudience,
				Message:    fmt.Sprintf("Title could reference target audience: %s", strings.Join(ctx.Audience, ", ")),
				Audience:   ctx.Audience,
				Suggestion: "Consider adding audience reference for better targeting",
			})
		}
	}

	return TitleTemplateResult{
		IsValid:        !hasHighSeverity(warnings),
		Warnings:       warnings,
		Length:         length,
		MatchesPattern: matchesPattern,
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

func hasHighSeverity(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityHigh {
			return true
		}
	}
	return false
}
