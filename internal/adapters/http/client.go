// Package http implements the pipeline's HTTPClient port on net/http with
// a bounded retry policy for transient transport failures.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/munyokii/Ubuntu-Requests/internal/config"
	"github.com/munyokii/Ubuntu-Requests/internal/fetcher"
	"github.com/munyokii/Ubuntu-Requests/internal/observability"
)

// ClientConfig holds HTTP client configuration.
type ClientConfig struct {
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	UserAgent   string
}

// DefaultConfig returns the default HTTP client configuration.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:     config.DefaultTimeout,
		MaxAttempts: config.DefaultMaxAttempts,
		RetryDelay:  config.DefaultRetryDelay,
		UserAgent:   config.DefaultUserAgent,
	}
}

// Client issues GET requests with a fixed timeout and bounded retries.
type Client struct {
	client *http.Client
	config ClientConfig
	logger observability.Logger
}

// NewClient creates a new HTTP client.
func NewClient(cfg ClientConfig, logger observability.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultUserAgent
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}
}

// Download implements fetcher.HTTPClient. Transport failures (connection
// refused, timeout, DNS) are retried up to MaxAttempts with a fixed delay;
// a non-2xx status is returned immediately as an HTTP error since 4xx/5xx
// responses are not transient.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, http.Header, error) {
	var lastErr error

	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn(ctx, "Retrying download", observability.Fields{
				"url":     url,
				"attempt": attempt,
			})
			select {
			case <-time.After(c.config.RetryDelay):
			case <-ctx.Done():
				return nil, nil, fetcher.NewNetworkError(url, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, nil, fetcher.NewInvalidURL(url, err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, nil, fetcher.NewNetworkError(url, ctx.Err())
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, nil, fetcher.NewHTTPError(url, resp.StatusCode)
		}

		return resp.Body, resp.Header, nil
	}

	return nil, nil, fetcher.NewNetworkError(url, lastErr)
}
