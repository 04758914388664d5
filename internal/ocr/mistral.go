package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const mistralOCREndpoint = "https://api.mistral.ai/v1/ocr"

// Client calls the Mistral OCR API to extract page text from PDFs.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	stats      *Stats
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		stats: NewStats(time.Hour),
	}
}

// Stats returns the rolling latency stats collector for this client.
func (c *Client) Stats() *Stats {
	return c.stats
}

// Model returns the OCR model name this client calls.
func (c *Client) Model() string {
	return c.model
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

type ocrRequest struct {
	Model    string      `json:"model"`
	Document ocrDocument `json:"document"`
}

// ocrPage is the closed subset of the OCR response the core consumes.
// Dimensions, images and any future fields are deliberately ignored.
type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

// ProcessDocument sends PDF bytes through OCR and returns the extracted
// pages. Transient API failures (429, 5xx) are retried with backoff before
// giving up; any response without a page list is a per-document failure.
func (c *Client) ProcessDocument(ctx context.Context, pdfBytes []byte, filename string) (*Document, error) {
	var resp *ocrResponse
	var lastErr error
	for attempt := range MaxRetries {
		start := time.Now()
		resp, lastErr = c.process(ctx, pdfBytes)
		c.stats.Record(time.Since(start).Milliseconds())
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("ocr %s: %w", filename, lastErr)
	}
	if len(resp.Pages) == 0 {
		return nil, fmt.Errorf("ocr %s: response contains no pages", filename)
	}

	doc := &Document{
		DocID:    DocIDFromFilename(filename),
		Filename: filename,
		Pages:    make([]Page, 0, len(resp.Pages)),
	}
	for _, p := range resp.Pages {
		text := strings.TrimSpace(MarkdownToText(p.Markdown))
		doc.Pages = append(doc.Pages, Page{
			Number: p.Index + 1, // OCR page indexes are zero-based
			Text:   text,
		})
	}
	return doc, nil
}

func (c *Client) process(ctx context.Context, pdfBytes []byte) (*ocrResponse, error) {
	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
	reqBody := ocrRequest{
		Model: c.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: dataURL,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, mistralOCREndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ocr api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp ocrResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &apiResp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
