package parser

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tgallois/cursus/internal/ocr"
)

// Local runs file-type extraction in-process. It implements the same
// contract as the Mistral OCR client so the pipeline can swap between
// them on configuration alone.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

// ProcessDocument picks an extractor by file extension and converts the
// bytes into pages.
func (l *Local) ProcessDocument(ctx context.Context, data []byte, filename string) (*ocr.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ex, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	doc, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	return doc, nil
}
