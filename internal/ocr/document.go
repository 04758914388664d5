package ocr

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Page is one page of extracted text. Page numbers within a document are
// strictly increasing but not necessarily contiguous.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// Document is the page-level result of text extraction for a single source
// file. This is the only shape the chunking core consumes; anything richer
// returned by an extraction backend is dropped at the client boundary.
type Document struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Pages    []Page `json:"pages"`
}

// DocIDFromFilename derives a stable document ID from the source filename.
func DocIDFromFilename(filename string) string {
	sum := md5.Sum([]byte(filename))
	return fmt.Sprintf("%x", sum)[:16]
}

// CheckPages verifies the page list is usable: non-empty, and page numbers
// positive and strictly increasing. A document failing this check is
// rejected as a whole; the batch continues.
func (d *Document) CheckPages() error {
	if len(d.Pages) == 0 {
		return fmt.Errorf("document %s: no pages", d.DocID)
	}
	prev := 0
	for i, p := range d.Pages {
		if p.Number <= prev {
			return fmt.Errorf("document %s: page %d has number %d, not increasing after %d", d.DocID, i, p.Number, prev)
		}
		prev = p.Number
	}
	return nil
}

// PageSpan returns the min and max page numbers of the document.
func (d *Document) PageSpan() (start, end int) {
	if len(d.Pages) == 0 {
		return 0, 0
	}
	return d.Pages[0].Number, d.Pages[len(d.Pages)-1].Number
}

// CombinedText joins all page texts with newlines, in page order.
func (d *Document) CombinedText() string {
	texts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}
