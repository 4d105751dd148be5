package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DummyClient is a deterministic in-process provider for local
// development and tests. It is wired in explicitly at bootstrap when
// LLM_PROVIDER=dummy; nothing in the pipeline switches on the
// environment.
type DummyClient struct{}

// NewDummyClient constructs a DummyClient.
func NewDummyClient() *DummyClient {
	return &DummyClient{}
}

const dummyTitle = "Handmade Silver Ring - Perfect Gift for Mom Birthday Anniversary"

var dummyTags = []string{
	"handmade", "silver", "ring", "gift", "mom", "birthday", "anniversary",
	"jewelry", "personalized", "unique", "artisan", "crafted", "adjustable",
}

const dummyDescription = `::: Overview :::
Plain ASCII overview of a thoughtful handmade silver ring that makes a meaningful gift.

::: Features :::
- Lightweight and comfortable
- Everyday wear
- Gift-ready packaging

::: Shipping and Processing :::
Orders are prepared quickly and shipped with tracking. Processing times are communicated clearly.

::: Call To Action :::
Add this to your cart today and make your gift special.`

var (
	dummyHandmadeRe = regexp.MustCompile(`(?i)hand[-\s]?made|handcrafted|hand\s?crafted|artisan`)
	dummyRingRe     = regexp.MustCompile(`(?i)\bring\b`)
)

// GenerateField returns the canned response for the requested field.
func (DummyClient) GenerateField(ctx context.Context, req FieldRequest) (FieldResult, error) {
	if err := ctx.Err(); err != nil {
		return FieldResult{}, err
	}
	res := FieldResult{TokensIn: 100, TokensOut: 50, Model: "dummy"}
	switch req.Field {
	case FieldTitle:
		res.Text = dummyTitle
	case FieldTags:
		res.Tags = append([]string(nil), dummyTags...)
	case FieldDescription:
		res.Text = dummyDescription
	default:
		return FieldResult{}, fmt.Errorf("unknown field type: %s", req.Field)
	}
	return res, nil
}

// Classify derives minimal semantics from the input text so tests can
// steer gift/handmade behavior through the raw dump alone.
func (DummyClient) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResult, error) {
	if err := ctx.Err(); err != nil {
		return ClassifyResult{}, err
	}
	text := strings.ToLower(req.RawText)
	handmade := dummyHandmadeRe.MatchString(text)
	isRing := dummyRingRe.MatchString(text)

	productType := "jewelry"
	focus := "jewelry"
	if isRing {
		productType = "ring"
		focus = "silver ring"
	}
	if handmade {
		focus = "handmade " + focus
	}

	payload := map[string]any{
		"focus_keyword":    focus,
		"product_type":     productType,
		"gift_mode":        true,
		"gift_emotion":     "romantic",
		"tone_style":       "warm",
		"style_trend":      "minimalist",
		"seasonal_context": "all-season",
		"audience_profile": "for her",
		"audience":         []string{"women", "gift-buyers"},
		"fallback_profile": "general",
		"allow_handmade":   handmade,
		"retry_reason":     "none",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ClassifyResult{}, err
	}
	return ClassifyResult{Raw: raw, TokensIn: 100, TokensOut: 50, Model: "dummy"}, nil
}

var _ Client = (*DummyClient)(nil)
