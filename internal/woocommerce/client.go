package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiPrefix = "/wp-json/wc/v3"

	defaultTimeout     = 45 * time.Second
	maxRetries         = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2

	categoriesPerPage = 100
)

// Client interfaces with the WooCommerce REST API (wc/v3). Authentication
// uses query-string consumer key/secret, which Woo accepts on HTTPS stores.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
}

// NewClient creates a new WooCommerce API client. baseURL is the shop root
// (e.g. "https://shop.example.com") without the wp-json prefix.
func NewClient(baseURL, consumerKey, consumerSecret string) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// productResponse is the subset of the product object the sync needs back.
type productResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// errorResponse is WooCommerce's JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TestConnection verifies the configured credentials with a read-only call.
func (c *Client) TestConnection(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/system_status", nil, nil, nil)
}

// CreateProduct creates a product and returns its storefront ID.
func (c *Client) CreateProduct(ctx context.Context, payload *ProductPayload) (string, error) {
	var resp productResponse
	if err := c.doJSON(ctx, http.MethodPost, "/products", nil, payload, &resp); err != nil {
		return "", err
	}
	return strconv.Itoa(resp.ID), nil
}

// UpdateProduct updates an existing product in place.
func (c *Client) UpdateProduct(ctx context.Context, wooID string, payload *ProductPayload) error {
	return c.doJSON(ctx, http.MethodPut, "/products/"+wooID, nil, payload, nil)
}

// GetProduct probes whether a product still exists on the storefront.
// Returns ErrNotFound when the stored ID is stale.
func (c *Client) GetProduct(ctx context.Context, wooID string) error {
	return c.doJSON(ctx, http.MethodGet, "/products/"+wooID, nil, nil, nil)
}

// FindProductBySKU looks a product up by SKU and returns its storefront ID,
// or ErrNotFound when no product carries that SKU.
func (c *Client) FindProductBySKU(ctx context.Context, sku string) (string, error) {
	q := url.Values{}
	q.Set("sku", sku)

	var resp []productResponse
	if err := c.doJSON(ctx, http.MethodGet, "/products", q, nil, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", ErrNotFound
	}
	return strconv.Itoa(resp[0].ID), nil
}

// CreateVariation creates a variation under a parent product and returns
// its storefront ID.
func (c *Client) CreateVariation(ctx context.Context, parentID string, payload *VariationPayload) (string, error) {
	var resp productResponse
	path := "/products/" + parentID + "/variations"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, payload, &resp); err != nil {
		return "", err
	}
	return strconv.Itoa(resp.ID), nil
}

// UpdateVariation updates an existing variation of a parent product.
func (c *Client) UpdateVariation(ctx context.Context, parentID, variationID string, payload *VariationPayload) error {
	path := "/products/" + parentID + "/variations/" + variationID
	return c.doJSON(ctx, http.MethodPut, path, nil, payload, nil)
}

// ListCategories fetches all product categories, paginating until the
// storefront runs out of pages.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var all []Category

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(categoriesPerPage))
		q.Set("page", strconv.Itoa(page))

		var batch []Category
		if err := c.doJSON(ctx, http.MethodGet, "/products/categories", q, nil, &batch); err != nil {
			return nil, err
		}

		all = append(all, batch...)
		if len(batch) < categoriesPerPage {
			break
		}
	}

	return all, nil
}

// doJSON performs a request with bounded retries on transient failures.
// Rate limits, 5xx responses and network timeouts are retried with
// exponential backoff; everything else fails immediately.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateRetryDelay(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = c.doRequest(ctx, method, path, query, body, out)
		if lastErr == nil {
			return nil
		}

		// Only retry on rate limits, server errors or timeouts
		if !isRetryableError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	u, err := url.Parse(c.baseURL + apiPrefix + path)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("consumer_key", c.consumerKey)
	q.Set("consumer_secret", c.consumerSecret)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidCredentials
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var wooErr errorResponse
	if err := json.Unmarshal(body, &wooErr); err == nil && wooErr.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Code: wooErr.Code, Message: wooErr.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
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
