package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Source produces the raw bytes of a document.
type Source interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// Client fetches a single page with a browser header set.
// It makes exactly one attempt per call; there are no retries.
type Client struct {
	// client is the underlying HTTP client.
	client *http.Client

	// timeout bounds the whole request including the body read.
	timeout time.Duration

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of the body to read.
	maxBodySize int64

	// headers are extra request headers.
	headers map[string]string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithHeaders adds request headers. They override the browser defaults.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Default request parameters.
const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 5 * 1024 * 1024
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// NewClient creates a Client with the browser header set.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}

	return c
}

// Fetch performs a single GET of target and returns the body.
// Accept-Encoding is left to the transport so that gzip bodies are
// decompressed transparently.
func (c *Client) Fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	c.logger.Info("fetching page", "url", target)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("fetch returned bad status code", "url", target, "status_code", resp.StatusCode)
		return nil, &HTTPError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &NetworkError{URL: target, Err: err}
	}
	if int64(len(body)) > c.maxBodySize {
		body = body[:c.maxBodySize]
		c.logger.Warn("page exceeds the body size limit, listings near the end may be missing",
			"url", target,
			"limit_bytes", c.maxBodySize,
		)
	}

	c.logger.Debug("page fetched", "url", target, "bytes", len(body))
	return body, nil
}
