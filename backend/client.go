package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heritagegraph/dashboard-gateway/internal/errors"
	"github.com/heritagegraph/dashboard-gateway/session"
	"github.com/rs/zerolog"
)

// Client is the bridge to the knowledge-graph backend API. Every page or
// component that needs backend data goes through it; the bearer token is
// taken exclusively from the client session view, never re-derived. When no
// token is present the Authorization header is omitted entirely - a
// malformed or empty bearer value is never sent.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a backend bridge for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Ping is the best-effort sign-in call. It runs before any session view
// exists, so it takes the freshly obtained access token directly.
func (c *Client) Ping(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodGet, "/data/api/testme/", nil, accessToken, nil, nil)
}

// do performs a backend request. bearer may be empty, in which case no
// Authorization header is attached. out, when non-nil, receives the decoded
// JSON body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, bearer string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend %s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrBackendUnavailable, "backend %s %s (%v)", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("backend request failed")
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend %s %s: decode response: %w", method, path, err)
	}
	return nil
}

// get is a view-scoped GET helper.
func (c *Client) get(ctx context.Context, view *session.View, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, view.Bearer(), nil, out)
}
