package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	accessTokenHeader = "x-access-token"
)

// Client performs authenticated GET requests against the provider APIs.
// Transient failures (connection errors, 5xx) are retried with exponential
// backoff; callers only ever see the terminal outcome.
type Client struct {
	http   *retryablehttp.Client
	token  string
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	maxRetries int
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// NewClient creates a provider API client that sends the given access token
// with every request.
func NewClient(accessToken string, logger zerolog.Logger, opts ...Option) *Client {
	options := clientOptions{
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&options)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = options.maxRetries
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 8 * time.Second
	rc.HTTPClient.Timeout = options.timeout
	rc.Logger = nil

	return &Client{
		http:   rc,
		token:  accessToken,
		logger: logger,
	}
}

// Get issues a single authenticated GET and returns the response body.
// A non-2xx terminal response is returned as an *APIError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Str("url", url).
			Msg("Provider returned non-success status")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       string(body),
		}
	}

	return body, nil
}
