// Package openai provides the generation client for OpenAI-compatible
// chat completion APIs.
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

	"golang.org/x/time/rate"

	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = domain.DefaultLLMModel
	DefaultTimeout     = domain.DefaultLLMTimeoutSeconds * time.Second
	DefaultTemperature = domain.DefaultLLMTemperature
	DefaultBurst       = 2
)

// Config holds configuration for the OpenAI generator.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Temperature is sent with every request. Zero is sent as zero.
	Temperature float64

	// Timeout bounds a single request (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond paces outbound requests. Zero or less disables pacing.
	RequestsPerSecond float64

	// Burst is the number of requests allowed back to back (default: 2).
	Burst int
}

// Generator produces summaries and labels using the OpenAI chat completions API.
type Generator struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	limiter     *rate.Limiter
	promptStore driven.PromptStore
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Temperature float64             `json:"temperature"`
	Messages    []chatCompletionMsg `json:"messages"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the error body returned with non-success statuses.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewGenerator creates a new OpenAI generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrAPIKeyRequired)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Generator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		limiter:     rate.NewLimiter(limit, cfg.Burst),
	}, nil
}

// GenerateSummary asks for a summary readable in under five minutes and
// returns the first completion trimmed of surrounding whitespace.
func (g *Generator) GenerateSummary(ctx context.Context, title, body string) (string, error) {
	prompt := fmt.Sprintf(g.loadPrompt(driven.PromptSummary), title, body)

	text, err := g.chatCompletion(ctx, "summary", prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateLabels asks for exactly five comma-separated labels and returns
// the first completion split on commas, each label trimmed.
func (g *Generator) GenerateLabels(ctx context.Context, title, body string) ([]string, error) {
	prompt := fmt.Sprintf(g.loadPrompt(driven.PromptLabels), title, body)

	text, err := g.chatCompletion(ctx, "labels", prompt)
	if err != nil {
		return nil, err
	}
	return ParseLabels(text), nil
}

// ParseLabels splits comma-separated completion text into trimmed labels.
// Entries that are empty after trimming are dropped.
func ParseLabels(text string) []string {
	parts := strings.Split(text, ",")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// chatCompletion sends a single user message and returns the first choice's content.
func (g *Generator) chatCompletion(ctx context.Context, op, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", &domain.GenerationError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	reqBody := chatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &domain.GenerationError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", &domain.GenerationError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &domain.GenerationError{Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.GenerationError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.GenerationError{Op: op, StatusCode: resp.StatusCode, Err: errorFromBody(body)}
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &domain.GenerationError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if chatResp.Error != nil {
		return "", &domain.GenerationError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(chatResp.Error.Message)}
	}

	if len(chatResp.Choices) == 0 {
		return "", &domain.GenerationError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("no response choices returned")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// errorFromBody extracts the API error message, falling back to the raw body.
func errorFromBody(body []byte) error {
	var errResp struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		return errors.New(errResp.Error.Message)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return errors.New("empty response body")
	}
	return errors.New(text)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (g *Generator) loadPrompt(name string) string {
	fallback := defaultPrompts[name]
	if g.promptStore == nil {
		return fallback
	}
	prompt, err := g.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// defaultPrompts are used when no PromptStore is configured.
var defaultPrompts = map[string]string{
	driven.PromptSummary: `Summarise the following note so that the summary can be read in under five minutes.

Title: %s

%s`,
	driven.PromptLabels: `Suggest exactly five labels describing the topics of the following note.
Return only the five labels separated by commas, and nothing else.

Title: %s

%s`,
}

// ModelName returns the name of the model being used.
func (g *Generator) ModelName() string {
	return g.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the generator uses built-in prompts.
func (g *Generator) SetPromptStore(store driven.PromptStore) {
	g.promptStore = store
}
