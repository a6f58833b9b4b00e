// Package apiclient talks to the delivery-metrics backend over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries a fresh identifier on every request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failed response body ends up in an APIError.
const maxErrorBody = 4096

// APIError is returned for any response outside the 2xx range.
type APIError struct {
	StatusCode int
	Body       string
	Method     string
	Path       string
}

// Error embeds the status code and body text of the failed response.
func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is a rate limited JSON client for the backend API.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
}

var (
	_ contract.Fetcher     = &Client{} // Compile-time check
	_ contract.AdminClient = &Client{} // Compile-time check
)

// NewClient creates a client for the API rooted at baseURL.
// A rateLimit of zero or less disables pacing.
func NewClient(baseURL string, timeout time.Duration, rateLimit float64, logger logrus.FieldLogger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}
	if logger == nil {
		logger = contract.Logger
	}

	return &Client{
		baseURL:     u,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger.WithField("component", "apiclient"),
	}, nil
}

// NewClientFromConfig creates a client from the validated configuration.
func NewClientFromConfig(cfg *contract.Config) (*Client, error) {
	return NewClient(cfg.APIURL, cfg.Timeout, cfg.RateLimit, contract.Logger)
}

// endpoint joins the base URL with path and an optional "?..." query suffix.
func (c *Client) endpoint(path, query string) string {
	return c.baseURL.String() + path + query
}

// do sends one request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, query string, body any, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Debug("Request failed")
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(text),
			Method:     method,
			Path:       path,
		}
	}
	log.Debug("Request completed")

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// getJSON fetches a JSON collection. A null body decodes to an empty slice.
func getJSON[T any](ctx context.Context, c *Client, path, query string) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
