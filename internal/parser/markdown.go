package parser

import (
	"io"

	"github.com/tgallois/cursus/internal/ocr"
)

// MarkdownExtractor flattens markdown to plain text. Headings survive as
// their own lines, which is what the boundary scan needs.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (*ocr.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return singlePage(filename, ocr.MarkdownToText(string(src))), nil
}
