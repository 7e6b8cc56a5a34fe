// Package upstream contains the HTTP clients for the remote store API: auth,
// product catalog, sale recording and dashboard stats. Every call carries the
// session's bearer token; the store API owns all persistence.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"supermarket-pos/internal/domain"
)

// Client talks to the remote store API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client for the given base URL, e.g. "http://localhost:5000".
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Health checks the store API's health endpoint without authentication.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", "", nil, nil)
}

// doJSON performs a JSON request and decodes the response into out when
// non-nil. 401 maps to domain.ErrUnauthorized for the session layer; other
// failures wrap domain.ErrUpstream.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

// doForm performs a form-encoded request; the store's product endpoints read
// form fields rather than JSON bodies.
func (c *Client) doForm(ctx context.Context, method, path, token string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, token, out)
}

func (c *Client) send(req *http.Request, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrInvalid, apiErr.Error)
		}
		return fmt.Errorf("%w: %s %s", domain.ErrInvalid, req.Method, req.URL.Path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Printf("upstream %s %s returned %d", req.Method, req.URL.Path, resp.StatusCode)
		return fmt.Errorf("%w: %s %s: status %d", domain.ErrUpstream, req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrUpstream, req.Method, req.URL.Path, err)
	}
	return nil
}
