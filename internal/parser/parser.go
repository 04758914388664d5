// Package parser converts local document files into the OCR page contract.
// It is the extraction fallback used when no OCR key is configured: the
// pipeline consumes the same ocr.Document regardless of which collaborator
// produced it.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tgallois/cursus/internal/ocr"
)

// Extractor converts raw document bytes into extracted pages.
type Extractor interface {
	Extract(r io.Reader, filename string) (*ocr.Document, error)
}

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// singlePage wraps one text blob as a one-page document.
func singlePage(filename, text string) *ocr.Document {
	return &ocr.Document{
		DocID:    ocr.DocIDFromFilename(filename),
		Filename: filename,
		Pages: []ocr.Page{
			{Number: 1, Text: strings.TrimSpace(text)},
		},
	}
}
