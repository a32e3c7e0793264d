// Package airtable is a typed client for the Airtable record API. It is
// the execution side of the formula package: fragments built there are
// passed as filter strings to the list operations here.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

// DefaultBaseURL is the production Airtable API endpoint.
const DefaultBaseURL = "https://api.airtable.com"

// Client talks to the record API of one base.
type Client struct {
	apiKey  string
	baseID  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a record client for one base, authenticated with a
// personal access token.
func NewClient(apiKey, baseID string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseID:  baseID,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseID returns the base this client is bound to.
func (c *Client) BaseID() string { return c.baseID }

// apiError is the error envelope the Airtable API returns.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues a request and decodes the response into out. Non-2xx responses
// become coded errors carrying the API's error type and message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return aterr.Wrap(aterr.ErrRecordAPI, err, "encoding request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return aterr.Wrap(aterr.ErrRecordAPI, err, "building record request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return aterr.Wrap(aterr.ErrRecordAPI, err, "calling record API").WithBase(c.baseID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		e := aterr.New(aterr.ErrRecordAPI, "record API request failed").
			WithBase(c.baseID).
			With("status", resp.StatusCode).
			With("method", method).
			With("path", path)
		var envelope apiError
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Type != "" {
			e.With("api_error", envelope.Error.Type)
			if envelope.Error.Message != "" {
				e.With("api_message", envelope.Error.Message)
			}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			e.WithHelp("rate limited; retry after a short backoff")
		}
		return e
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return aterr.Wrap(aterr.ErrRecordDecode, err, "decoding record response").
			With("path", path)
	}
	return nil
}

func (c *Client) tablePath(table string) string {
	return fmt.Sprintf("/v0/%s/%s", c.baseID, url.PathEscape(table))
}

func (c *Client) recordPath(table, recordID string) string {
	return c.tablePath(table) + "/" + url.PathEscape(recordID)
}
