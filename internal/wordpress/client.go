// Package wordpress uploads product images through the WordPress media
// REST API. Media uploads authenticate with an application password, which
// is separate from the WooCommerce consumer key/secret because the media
// endpoints live outside the wc/v3 namespace.
package wordpress

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
	mediaPath   = "/wp-json/wp/v2/media"
	usersMePath = "/wp-json/wp/v2/users/me"

	defaultTimeout     = 60 * time.Second
	maxRetries         = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2
)

// Client interfaces with the WordPress media API
type Client struct {
	siteURL     string
	username    string
	appPassword string
	httpClient  *http.Client
}

// NewClient creates a new WordPress media client. siteURL is the WordPress
// root without the wp-json prefix.
func NewClient(siteURL, username, appPassword string) *Client {
	return &Client{
		siteURL:     strings.TrimRight(siteURL, "/"),
		username:    username,
		appPassword: appPassword,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Media is the uploaded attachment as WordPress reports it back.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// UploadImage uploads an image binary and returns the attachment with its
// public URL. The filename ends up as the attachment slug, so callers
// should sanitize it first.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename string) (*Media, error) {
	var media *Media
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

		media, lastErr = c.doUpload(ctx, data, filename)
		if lastErr == nil {
			return media, nil
		}

		if !isRetryableError(lastErr) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doUpload(ctx context.Context, data []byte, filename string) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.siteURL+mediaPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.appPassword)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	req.Header.Set("Content-Type", http.DetectContentType(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	var media Media
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if media.SourceURL == "" {
		return nil, fmt.Errorf("media upload returned no source URL (id %d)", media.ID)
	}

	return &media, nil
}

// TestConnection verifies the application password with a read-only call.
func (c *Client) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL+usersMePath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return classifyStatus(resp)
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WordPress API error (status %d): %s", resp.StatusCode, string(body))
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
