package parser

import (
	"fmt"
	"io"

	"github.com/tgallois/cursus/internal/ocr"
)

// TextExtractor handles plain text files as a single page.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*ocr.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return singlePage(filename, string(data)), nil
}
