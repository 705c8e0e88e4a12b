// Package api is the HTTP client for the backend REST service that owns all
// persistence and business rules. Every storefront and admin feature goes
// through this surface; nothing here caches or retries.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"context"
)

const defaultTimeout = 8 * time.Second

// ErrUnauthorized marks a 401 from any authenticated call. Callers decide
// whether it tears identity down; the client only classifies.
var ErrUnauthorized = errors.New("api: unauthorized")

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues calls against the backend API.
type Client struct {
	base   *url.URL
	client HTTPClient
}

// NewClient constructs a backend API client.
func NewClient(baseURL string, client HTTPClient) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{base: parsed, client: client}, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, endpoint string, payload any, token string) (*http.Request, error) {
	var buf bytes.Buffer
	if payload != nil {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("api: encode payload: %w", err)
		}
	}
	req, err := c.newRequest(ctx, method, endpoint, &buf, token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) resolve(endpoint string) string {
	if endpoint == "" {
		return c.base.String()
	}
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref := &url.URL{Path: trimmed}
	return c.base.ResolveReference(ref).String()
}

// errorFromResponse drains the body and builds a descriptive error. 401s are
// wrapped in ErrUnauthorized so callers can match with errors.Is.
func (c *Client) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	type errorPayload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	var payload errorPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Message != "" {
				msg = payload.Message
			} else if payload.Error != "" {
				msg = payload.Error
			}
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

// StatusError is a non-2xx backend response other than 401.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("api: backend error (%d): %s", e.StatusCode, e.Message)
}

// decodeInto decodes a 2xx response body as JSON.
func decodeInto(resp *http.Response, v any, what string) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("api: decode %s: %w", what, err)
	}
	return nil
}
