package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tgallois/cursus/internal/ocr"
)

// CSVExtractor renders CSV rows as labelled lines, batched into pages of
// rowsPerPage rows.
type CSVExtractor struct{}

const rowsPerPage = 50

func (p *CSVExtractor) Extract(r io.Reader, filename string) (*ocr.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &ocr.Document{
		DocID:    ocr.DocIDFromFilename(filename),
		Filename: filename,
	}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	dataRows := records[1:]

	pageNum := 0
	for i := 0; i < len(dataRows); i += rowsPerPage {
		end := min(i+rowsPerPage, len(dataRows))

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
			text.WriteString("\n")
		}

		pageNum++
		doc.Pages = append(doc.Pages, ocr.Page{
			Number: pageNum,
			Text:   strings.TrimSpace(text.String()),
		})
	}
	return doc, nil
}
