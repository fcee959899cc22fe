// Package openai asks a chat completion model for product content
// suggestions. Responses are forced into JSON mode so the suggestion can be
// parsed without scraping free-form text.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"

	defaultTimeout     = 60 * time.Second
	maxRetries         = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2

	// Low temperature keeps suggestions close to the product facts; the
	// token cap bounds cost per product.
	suggestionTemperature = 0.2
	suggestionMaxTokens   = 350
)

// Client interfaces with the OpenAI chat completions API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OpenAI API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SuggestionRequest carries the product facts the model may use. When
// CategoryNames is non-empty the suggested category is constrained to one
// of them, so suggestions always map to a category that exists on the
// storefront.
type SuggestionRequest struct {
	ProductName         string
	ExistingDescription string
	CategoryNames       []string
	Model               string
}

// Suggestion is the parsed model output. Empty fields mean the model could
// not infer a value.
type Suggestion struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest asks the model for a description, brand and category for the
// given product.
func (c *Client) Suggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("product name is required")
	}

	var suggestion *Suggestion
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateRetryDelay(attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		suggestion, lastErr = c.doSuggest(ctx, req)
		if lastErr == nil {
			return suggestion, nil
		}

		if !isRetryableError(lastErr) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doSuggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error) {
	model := req.Model
	if model == "" {
		model = defaultModel
	}

	body, err := json.Marshal(chatRequest{
		Model:          model,
		Messages:       buildMessages(req),
		Temperature:    suggestionTemperature,
		MaxTokens:      suggestionMaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	var suggestion Suggestion
	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion JSON: %w", err)
	}

	return &suggestion, nil
}

// TestConnection verifies the API key with a read-only call.
func (c *Client) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return classifyStatus(resp)
}

func buildMessages(req SuggestionRequest) []chatMessage {
	system := `You are a product content assistant for an online store. ` +
		`Respond with a single JSON object with the keys "description", "brand" and "category". ` +
		`Write the description as two to three sentences of clean retail copy without HTML markup. ` +
		`Use an empty string for any value you cannot infer.`

	var user strings.Builder
	fmt.Fprintf(&user, "Product name: %s\n", req.ProductName)
	if req.ExistingDescription != "" {
		fmt.Fprintf(&user, "Current description: %s\n", req.ExistingDescription)
	}
	if len(req.CategoryNames) > 0 {
		fmt.Fprintf(&user, "Choose \"category\" from this exact list, or use an empty string: %s\n",
			strings.Join(req.CategoryNames, ", "))
	} else {
		user.WriteString("Use an empty string for \"category\".\n")
	}

	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user.String()},
	}
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidAPIKey
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func calculateRetryDelay(attempt int) time.Duration {
	delay := initialRetryDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
