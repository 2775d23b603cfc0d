package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/configs"
	"github.com/roach88/nyx/internal/infrastructure/metrics"
)

// Client talks to the external suggestion generator over HTTP. The
// generator's output is free text that may embed a structured payload;
// interpreting it is the planner's job, not ours.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Context any    `json:"context,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func NewClient(cfg configs.SuggestConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate returns the generator's raw text for the prompt. Failures wrap
// domain.ErrSuggestionUnavailable so callers can degrade instead of abort.
func (c *Client) Generate(ctx context.Context, prompt string, extra any) (string, error) {
	start := time.Now()
	defer func() {
		metrics.SuggestionDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Context: extra,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", domain.ErrSuggestionUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSuggestionUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSuggestionUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("%w: generator returned %d: %s", domain.ErrSuggestionUnavailable, res.StatusCode, raw)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrSuggestionUnavailable, err)
	}

	return out.Text, nil
}
