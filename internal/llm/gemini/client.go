package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"listing-backend/internal/llm"
)

// Client implements llm.Client on the Gemini API. The classifier stage
// uses a structured-output schema so malformed JSON never reaches the
// pipeline; field stages return plain text (tags as a JSON array).
type Client struct {
	client *genai.Client
	model  string
}

// Config holds Gemini connection settings.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// New constructs a Gemini client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Client{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

// classifierSchema pins the classifier response shape. The pipeline
// still validates the payload; the schema just keeps the raw JSON
// well-formed.
var classifierSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"focus_keyword":    {Type: genai.TypeString},
		"product_type":     {Type: genai.TypeString},
		"gift_mode":        {Type: genai.TypeBoolean},
		"audience":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"fallback_profile": {Type: genai.TypeString},
		"allow_handmade":   {Type: genai.TypeBoolean},
		"retry_reason":     {Type: genai.TypeString},
	},
	Required: []string{"audience", "gift_mode", "fallback_profile", "retry_reason"},
}

var tagsSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

// GenerateField runs one generation call for a field stage.
func (c *Client) GenerateField(ctx context.Context, req llm.FieldRequest) (llm.FieldResult, error) {
	profile := llm.ProfileFor(req.Field)
	prompt := composePrompt(req.ContextBlock, req.Prompt, req.RawInput)

	cfg := &genai.GenerateContentConfig{
		CandidateCount: 1,
		Temperature:    genai.Ptr(profile.Temperature),
	}
	if req.Field == llm.FieldTags {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = tagsSchema
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return llm.FieldResult{}, fmt.Errorf("gemini: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return llm.FieldResult{}, fmt.Errorf("gemini: empty response")
	}

	res := llm.FieldResult{
		TokensIn:  llm.ApproxTokens(prompt),
		TokensOut: llm.ApproxTokens(text),
		Model:     c.model,
	}
	if req.Field == llm.FieldTags {
		var tags []string
		if err := json.Unmarshal([]byte(text), &tags); err != nil {
			return llm.FieldResult{}, fmt.Errorf("%w: gemini tags", llm.ErrInvalidJSON)
		}
		res.Tags = tags
		return res, nil
	}
	res.Text = text
	return res, nil
}

// Classify runs the classifier stage with a structured-output schema.
func (c *Client) Classify(ctx context.Context, req llm.ClassifyRequest) (llm.ClassifyResult, error) {
	input, err := json.MarshalIndent(map[string]any{
		"raw_text":                  req.RawText,
		"persona_specificity_level": req.PersonaLevel,
	}, "", "  ")
	if err != nil {
		return llm.ClassifyResult{}, err
	}
	prompt := req.Prompt + "\n\n" + string(input)

	profile := llm.ProfileFor("classifier")
	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			Temperature:      genai.Ptr(profile.Temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   classifierSchema,
		},
	)
	if err != nil {
		return llm.ClassifyResult{}, fmt.Errorf("gemini: %w", err)
	}

	raw := json.RawMessage(strings.TrimSpace(resp.Text()))
	if !json.Valid(raw) {
		return llm.ClassifyResult{}, llm.ErrInvalidJSON
	}
	return llm.ClassifyResult{
		Raw:       raw,
		TokensIn:  llm.ApproxTokens(prompt),
		TokensOut: llm.ApproxTokens(string(raw)),
		Model:     c.model,
	}, nil
}

func composePrompt(contextBlock, prompt, rawInput string) string {
	var b strings.Builder
	if strings.TrimSpace(contextBlock) != "" {
		b.WriteString(contextBlock)
		b.WriteString("\n\n")
	}
	b.WriteString(prompt)
	b.WriteString("\n\nRAW_INPUT:\n")
	b.WriteString(rawInput)
	return b.String()
}

var _ llm.Client = (*Client)(nil)
