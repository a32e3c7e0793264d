package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

// DefaultBaseURL is the production Airtable API endpoint.
const DefaultBaseURL = "https://api.airtable.com"

// Client fetches base metadata from the Airtable meta API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests and
// proxies.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a metadata client authenticated with a personal access
// token.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseSchema fetches the schema of a base and returns it sorted
// case-insensitively by table, field, and view name. A schema with no
// tables is an error: it means the token sees the base but none of its
// contents, which every downstream consumer would misread as an empty
// base.
func (c *Client) BaseSchema(ctx context.Context, baseID string) (*Schema, error) {
	url := fmt.Sprintf("%s/v0/meta/bases/%s/tables", c.baseURL, baseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrMetaRequest, err, "building metadata request").WithBase(baseID)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrMetaRequest, err, "fetching base schema").WithBase(baseID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, aterr.New(aterr.ErrMetaStatus, "metadata request failed").
			WithBase(baseID).
			With("status", resp.StatusCode).
			With("body", string(body)).
			WithHelp("check that the token has schema.bases:read scope and access to this base")
	}

	var schema Schema
	if err := json.NewDecoder(resp.Body).Decode(&schema); err != nil {
		return nil, aterr.Wrap(aterr.ErrMetaDecode, err, "decoding base schema").WithBase(baseID)
	}
	if len(schema.Tables) == 0 {
		return nil, aterr.New(aterr.ErrEmptySchema, "base schema has no tables").WithBase(baseID)
	}

	schema.Sort()
	return &schema, nil
}
