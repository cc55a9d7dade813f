// Package remote talks to the hosted PostgREST backend: name sets, swipes,
// households, and anonymous auth. All calls are rate limited and bounded by
// the configured timeout; callers decide what a failure means.
package remote

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/kinderhq/petnames-core/internal/config"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

// Client provides access to the remote REST backend.
type Client struct {
	logger      *slog.Logger
	baseURL     string
	anonKey     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a remote client from config.
func NewClient(logger *slog.Logger, cfg config.RemoteConfig) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 5),
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// restURL builds a /rest/v1 URL for a table or rpc path.
func (c *Client) restURL(path string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newRequest builds a request with the standard auth headers. An empty token
// falls back to the anon key as the bearer.
func (c *Client) newRequest(ctx context.Context, method, rawURL, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doJSON executes a request and decodes the response body into dest, which
// may be nil when the body is irrelevant.
func (c *Client) doJSON(req *http.Request, dest any) error {
	if err := c.wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.ErrUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.UnmarshalRead(resp.Body, dest); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "parse remote response")
	}
	return nil
}

// doCount executes a HEAD request with an exact-count preference and parses
// the total from the Content-Range header.
func (c *Client) doCount(ctx context.Context, table, token string, query url.Values) (int, error) {
	query.Set("select", "*")
	req, err := c.newRequest(ctx, http.MethodHead, c.restURL(table, query), token, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	if err := c.wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.ErrUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, c.statusError(resp)
	}

	return parseContentRangeTotal(resp.Header.Get("Content-Range"))
}

// statusError maps a non-2xx response to a domain error, draining a little of
// the body for the log.
func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // Best-effort diagnostics
	c.logger.Warn("Remote request failed",
		"method", resp.Request.Method,
		"url", resp.Request.URL.Path,
		"status", resp.StatusCode,
		"body", string(snippet))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Unauthorized("remote rejected credentials")
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	default:
		return apperrors.Unavailablef("remote returned status %d", resp.StatusCode)
	}
}

// parseContentRangeTotal extracts the total from a "0-24/3573" style header.
// PostgREST reports "*/0" for empty results.
func parseContentRangeTotal(header string) (int, error) {
	_, totalStr, found := strings.Cut(header, "/")
	if !found {
		return 0, apperrors.Unavailablef("malformed Content-Range header %q", header)
	}
	if totalStr == "*" {
		return 0, nil
	}
	total, err := strconv.Atoi(totalStr)
	if err != nil {
		return 0, apperrors.Unavailablef("malformed Content-Range total %q", totalStr)
	}
	return total, nil
}
