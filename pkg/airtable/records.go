package airtable

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Record is one row of a table. Fields holds the cell values keyed by field
// display name (or field id when ReturnFieldsByFieldID was set).
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// SortSpec orders list results by one field.
type SortSpec struct {
	Field string
	// Desc sorts descending; the default is ascending.
	Desc bool
}

// ListOptions narrows a List call. The zero value lists everything the
// table holds, one page at a time.
type ListOptions struct {
	// Formula filters records server-side; build it with pkg/formula.
	Formula string
	// View restricts results to the records and order of a view.
	View string
	// Fields limits which cell values are returned.
	Fields []string
	// Sort orders the results.
	Sort []SortSpec
	// MaxRecords caps the total number of records across pages.
	MaxRecords int
	// PageSize caps one page, at most 100.
	PageSize int
	// Offset continues a previous page.
	Offset string
	// ReturnFieldsByFieldID keys Fields maps by field id instead of name.
	ReturnFieldsByFieldID bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Formula != "" {
		q.Set("filterByFormula", o.Formula)
	}
	if o.View != "" {
		q.Set("view", o.View)
	}
	for _, f := range o.Fields {
		q.Add("fields[]", f)
	}
	for i, s := range o.Sort {
		q.Set("sort["+strconv.Itoa(i)+"][field]", s.Field)
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		q.Set("sort["+strconv.Itoa(i)+"][direction]", dir)
	}
	if o.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(o.MaxRecords))
	}
	if o.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if o.Offset != "" {
		q.Set("offset", o.Offset)
	}
	if o.ReturnFieldsByFieldID {
		q.Set("returnFieldsByFieldId", "true")
	}
	return q
}

// Page is one page of list results. A non-empty Offset means more pages
// follow.
type Page struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// List fetches one page of records from a table.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, c.tablePath(table), opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAll follows pagination until the table is exhausted, returning every
// matching record.
func (c *Client) ListAll(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var all []Record
	for {
		page, err := c.List(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		opts.Offset = page.Offset
	}
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, table, recordID string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.recordPath(table, recordID), nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type writeRequest struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast,omitempty"`
}

// Create inserts a record. With typecast the server coerces cell values,
// e.g. creating select options on the fly.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any, typecast bool) (*Record, error) {
	var rec Record
	body := writeRequest{Fields: fields, Typecast: typecast}
	if err := c.do(ctx, http.MethodPost, c.tablePath(table), nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches the given fields of a record, leaving the rest untouched.
func (c *Client) Update(ctx context.Context, table, recordID string, fields map[string]any, typecast bool) (*Record, error) {
	var rec Record
	body := writeRequest{Fields: fields, Typecast: typecast}
	if err := c.do(ctx, http.MethodPatch, c.recordPath(table, recordID), nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Replace overwrites a record: fields absent from the map are cleared.
func (c *Client) Replace(ctx context.Context, table, recordID string, fields map[string]any, typecast bool) (*Record, error) {
	var rec Record
	body := writeRequest{Fields: fields, Typecast: typecast}
	if err := c.do(ctx, http.MethodPut, c.recordPath(table, recordID), nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, table, recordID string) error {
	var resp deleteResponse
	return c.do(ctx, http.MethodDelete, c.recordPath(table, recordID), nil, nil, &resp)
}
