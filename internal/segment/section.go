// Package segment splits OCR page streams into nested sections: major
// topic boundaries (Level A), pedagogical subsection boundaries (Level B),
// and token-windowed leaf chunks (Level C). Boundary patterns come from the
// catalog; the packing logic is independent of the domain vocabulary.
package segment

import "github.com/tgallois/cursus/internal/ocr"

// Major is a Level-A section, spanning one major boundary (inclusive) to
// the next (exclusive).
type Major struct {
	DocID     string
	Label     string // matched boundary line, or "General" when none matched
	Text      string
	Pages     []ocr.Page
	LineStart int
	LineEnd   int
}

// Minor is a Level-B section inside a Major. When no minor boundary
// matched, the whole Major becomes one Minor with Inherited set and the
// label carried down from Level A.
type Minor struct {
	DocID      string
	MajorLabel string
	Label      string
	Inherited  bool
	Text       string
	Pages      []ocr.Page
	LineStart  int
	LineEnd    int
}

// Leaf is a Level-C packed text window, the unit handed to metadata
// extraction and chunk assembly.
type Leaf struct {
	DocID      string
	MajorLabel string
	MinorLabel string
	Inherited  bool
	Text       string
	Tokens     int
	Pages      []ocr.Page
	LineStart  int
	Index      int // position within the enclosing Minor
}

// PageSpan returns the min/max page numbers of the pages feeding the
// enclosing section. Line-to-page mapping is not tracked precisely; the
// span of all section pages is an accepted approximation.
func (l *Leaf) PageSpan() (start, end int) {
	if len(l.Pages) == 0 {
		return 0, 0
	}
	start = l.Pages[0].Number
	end = l.Pages[0].Number
	for _, p := range l.Pages[1:] {
		if p.Number < start {
			start = p.Number
		}
		if p.Number > end {
			end = p.Number
		}
	}
	return start, end
}
