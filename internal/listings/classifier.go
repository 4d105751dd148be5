package listings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	maxAudienceTokens       = 4
	maxFallbackProfileChars = 60
)

var codeFenceOpenRe = regexp.MustCompile("^```[a-zA-Z]*\n?")

// classifierPayload is the schema the classifier model must return.
// Extra keys are tolerated; the forbidden listing fields are rejected.
type classifierPayload struct {
	Audience        *[]any `json:"audience"`
	GiftMode        *bool  `json:"gift_mode"`
	FallbackProfile *any   `json:"fallback_profile"`
	RetryReason     *any   `json:"retry_reason"`
	AllowHandmade   bool   `json:"allow_handmade"`

	Title       any `json:"title"`
	Tags        any `json:"tags"`
	Description any `json:"description"`
}

// ParseClassifierOutput strips code fences from the raw model response,
// parses the JSON and validates it against the classifier schema. The
// returned notes describe every violation found.
func ParseClassifierOutput(raw []byte) (ClassifierContext, []string, error) {
	content := strings.TrimSpace(string(raw))
	if strings.HasPrefix(content, "```") {
		content = codeFenceOpenRe.ReplaceAllString(content, "")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var payload classifierPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return ClassifierContext{}, nil, fmt.Errorf("classifier response was not valid JSON: %w", err)
	}

	notes := validateClassifierPayload(payload)
	if len(notes) > 0 {
		return ClassifierContext{}, notes, nil
	}

	ctx := ClassifierContext{
		GiftMode:      *payload.GiftMode,
		AllowHandmade: payload.AllowHandmade,
	}
	for _, token := range *payload.Audience {
		ctx.Audience = append(ctx.Audience, token.(string))
	}
	if s, ok := (*payload.FallbackProfile).(string); ok {
		ctx.FallbackProfile = s
	}
	if s, ok := (*payload.RetryReason).(string); ok {
		ctx.RetryReason = s
	}
	return ctx, nil, nil
}

func validateClassifierPayload(p classifierPayload) []string {
	var notes []string

	if p.Audience == nil {
		notes = append(notes, "Missing required field: audience")
	}
	if p.GiftMode == nil {
		notes = append(notes, "Missing required field: gift_mode")
	}
	if p.FallbackProfile == nil || *p.FallbackProfile == nil {
		notes = append(notes, "Missing required field: fallback_profile")
	}
	if p.RetryReason == nil || *p.RetryReason == nil {
		notes = append(notes, "Missing required field: retry_reason")
	}

	var audience []any
	if p.Audience != nil {
		audience = *p.Audience
		if len(audience) > maxAudienceTokens {
			notes = append(notes, fmt.Sprintf("audience array too long: %d (max %d)", len(audience), maxAudienceTokens))
		}
		for _, token := range audience {
			s, ok := token.(string)
			if !ok {
				notes = append(notes, fmt.Sprintf("audience token must be string, got: %T", token))
				continue
			}
			if !isPrintableASCII(s) {
				notes = append(notes, fmt.Sprintf("audience token has non-ASCII characters: %q", s))
			}
			if s != strings.ToLower(s) {
				notes = append(notes, fmt.Sprintf("audience token must be lowercase: %q", s))
			}
		}
	}

	fallback := ""
	if p.FallbackProfile != nil && *p.FallbackProfile != nil {
		s, ok := (*p.FallbackProfile).(string)
		if !ok {
			notes = append(notes, fmt.Sprintf("fallback_profile must be string, got: %T", *p.FallbackProfile))
		} else {
			fallback = s
			if len(s) > maxFallbackProfileChars {
				notes = append(notes, fmt.Sprintf("fallback_profile too long: %d chars (max %d)", len(s), maxFallbackProfileChars))
			}
		}
	}

	if p.RetryReason != nil && *p.RetryReason != nil {
		if _, ok := (*p.RetryReason).(string); !ok {
			notes = append(notes, fmt.Sprintf("retry_reason must be string, got: %T", *p.RetryReason))
		}
	}

	if p.Title != nil {
		notes = append(notes, "Forbidden field present: title")
	}
	if p.Tags != nil {
		notes = append(notes, "Forbidden field present: tags")
	}
	if p.Description != nil {
		notes = append(notes, "Forbidden field present: description")
	}

	if p.Audience != nil && len(audience) == 0 && strings.TrimSpace(fallback) == "" {
		notes = append(notes, "Either audience must have at least 1 element or fallback_profile must be non-empty")
	}

	return notes
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return false
		}
	}
	return true
}
