// Package store is the HTTP client for the Supabase (PostgREST) chunk
// tables. The core only depends on its insert/search/clear contracts; the
// storage engine itself lives on the other side of the wire.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	CurriculumTable = "curriculum_chunks"
	GuidesTable     = "teaching_guides_chunks"

	// BatchSize caps records per insert request (store-side limit).
	BatchSize = 100
)

// Client communicates with the PostgREST API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + table
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
}

// InsertBatch inserts records into a table in batches of at most
// BatchSize. Records must be JSON-marshalable chunk records. The first
// failing batch aborts the remainder.
func (c *Client) InsertBatch(ctx context.Context, table string, records []any) error {
	for start := 0; start < len(records); start += BatchSize {
		end := min(start+BatchSize, len(records))
		if err := c.insert(ctx, table, records[start:end]); err != nil {
			return fmt.Errorf("insert batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (c *Client) insert(ctx context.Context, table string, batch []any) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("insert %s: status %d: %s", table, resp.StatusCode, string(respBody))
	}
	return nil
}

// Filters narrows a chunk search. Zero values mean "no constraint"; array
// filters use PostgREST contains semantics.
type Filters struct {
	Subject    string
	Cycle      string
	Grades     []string
	GuideType  string
	Categories []string
	General    *bool // is_cycle_wide / is_general depending on the table
}

func (f Filters) encode(table string, limit int) string {
	q := url.Values{}
	q.Set("select", "*")
	if f.Subject != "" {
		q.Set("subject", "eq."+f.Subject)
	}
	if f.Cycle != "" {
		q.Set("cycle", "eq."+f.Cycle)
	}
	if f.GuideType != "" {
		q.Set("guide_type", "eq."+f.GuideType)
	}
	if len(f.Grades) > 0 {
		col := "grades"
		if table == GuidesTable {
			col = "applicable_grades"
		}
		q.Set(col, "cs.{"+strings.Join(f.Grades, ",")+"}")
	}
	if len(f.Categories) > 0 {
		q.Set("applicable_categories", "cs.{"+strings.Join(f.Categories, ",")+"}")
	}
	if f.General != nil {
		col := "is_cycle_wide"
		if table == GuidesTable {
			col = "is_general"
		}
		q.Set(col, "eq."+strconv.FormatBool(*f.General))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q.Encode()
}

// Search queries a chunk table and decodes the rows into out, which must
// be a pointer to a slice of the table's chunk record type.
func (c *Client) Search(ctx context.Context, table string, f Filters, limit int, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table)+"?"+f.encode(table, limit), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("search %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("search %s: status %d: %s", table, resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}

// ClearTable deletes every row of a table. Used by re-ingestion policies
// that replace rather than accumulate.
func (c *Client) ClearTable(ctx context.Context, table string) error {
	// PostgREST refuses an unfiltered delete; id=not.is.null matches all.
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.tableURL(table)+"?id=not.is.null", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("clear %s: status %d: %s", table, resp.StatusCode, string(respBody))
	}
	return nil
}

// Count returns the total row count of a table via a HEAD-style count
// request.
func (c *Client) Count(ctx context.Context, table string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table)+"?select=id", nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "count=exact")
	req.Header.Set("Range", "0-0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("count %s: status %d", table, resp.StatusCode)
	}

	// Content-Range is "lo-hi/total".
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("count %s: missing content range", table)
	}
	total, err := strconv.Atoi(cr[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("count %s: bad content range %q", table, cr)
	}
	return total, nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
