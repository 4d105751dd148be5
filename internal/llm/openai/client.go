package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listing-backend/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions. Each
// pipeline stage runs with its own call profile; there is no fallback
// model.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float32       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	PresencePenalty  float32       `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32       `json:"frequency_penalty,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateField runs one chat completion for a field stage. Tags are
// parsed from a JSON array; title and description come back as plain
// text.
func (c *Client) GenerateField(ctx context.Context, req llm.FieldRequest) (llm.FieldResult, error) {
	profile := llm.ProfileFor(req.Field)
	fullPrompt := composePrompt(req.ContextBlock, req.Prompt, req.RawInput)

	content, usage, err := c.completeOnce(ctx, fullPrompt, profile)
	if err != nil {
		return llm.FieldResult{}, err
	}

	res := llm.FieldResult{
		TokensIn:  usage.promptTokens(fullPrompt),
		TokensOut: usage.completionTokens(content),
		Model:     c.model,
	}
	if req.Field == llm.FieldTags {
		var tags []string
		if err := json.Unmarshal([]byte(content), &tags); err != nil {
			return llm.FieldResult{}, fmt.Errorf("%w: %s", llm.ErrInvalidJSON, truncate(content, 120))
		}
		res.Tags = tags
		return res, nil
	}
	res.Text = strings.TrimSpace(content)
	return res, nil
}

// Classify runs the classifier stage and returns the raw JSON payload.
func (c *Client) Classify(ctx context.Context, req llm.ClassifyRequest) (llm.ClassifyResult, error) {
	profile := llm.ProfileFor("classifier")

	input, err := json.MarshalIndent(map[string]any{
		"raw_text":                  req.RawText,
		"persona_specificity_level": req.PersonaLevel,
	}, "", "  ")
	if err != nil {
		return llm.ClassifyResult{}, err
	}
	fullPrompt := req.Prompt + "\n\n" + string(input)

	content, usage, err := c.completeOnce(ctx, fullPrompt, profile)
	if err != nil {
		return llm.ClassifyResult{}, err
	}
	raw := json.RawMessage(strings.TrimSpace(content))
	if !json.Valid(raw) {
		return llm.ClassifyResult{}, llm.ErrInvalidJSON
	}
	return llm.ClassifyResult{
		Raw:       raw,
		TokensIn:  usage.promptTokens(fullPrompt),
		TokensOut: usage.completionTokens(content),
		Model:     c.model,
	}, nil
}

func (c *Client) completeOnce(ctx context.Context, prompt string, profile llm.CallProfile) (string, *usage, error) {
	reqBody := chatRequest{
		Model:            c.model,
		Messages:         []chatMessage{{Role: "user", Content: prompt}},
		Temperature:      profile.Temperature,
		MaxTokens:        profile.MaxTokens,
		PresencePenalty:  profile.PresencePenalty,
		FrequencyPenalty: profile.FrequencyPenalty,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", nil, fmt.Errorf("openai response empty content")
	}

	var u *usage
	if parsed.Usage != nil {
		u = &usage{in: parsed.Usage.PromptTokens, out: parsed.Usage.CompletionTokens}
	}
	return content, u, nil
}

// usage falls back to the word-count approximation when the API omits
// token accounting.
type usage struct {
	in, out int
}

func (u *usage) promptTokens(prompt string) int {
	if u != nil && u.in > 0 {
		return u.in
	}
	return llm.ApproxTokens(prompt)
}

func (u *usage) completionTokens(content string) int {
	if u != nil && u.out > 0 {
		return u.out
	}
	return llm.ApproxTokens(content)
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

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ llm.Client = (*Client)(nil)
