package segment

import (
	"regexp"
	"strings"

	"github.com/tgallois/cursus/internal/catalog"
	"github.com/tgallois/cursus/internal/ocr"
)

// GeneralLabel is the fallback section label when no boundary matched.
const GeneralLabel = "General"

// Window bounds the Level-C token packing. A buffer is flushed when the
// next unit would push it past Max and it already holds at least Min
// tokens; a trailing remainder below AbsMin is dropped.
type Window struct {
	Min    int
	Max    int
	AbsMin int
}

// DefaultWindow returns the standard 150/300/50 token window.
func DefaultWindow() Window {
	return Window{Min: 150, Max: 300, AbsMin: 50}
}

// Segmenter applies the three-level split for one document family.
type Segmenter struct {
	cat *catalog.Catalog
	win Window
}

func New(cat *catalog.Catalog, win Window) *Segmenter {
	if win.Min <= 0 {
		win.Min = 150
	}
	if win.Max <= win.Min {
		win.Max = win.Min * 2
	}
	if win.AbsMin <= 0 {
		win.AbsMin = 50
	}
	return &Segmenter{cat: cat, win: win}
}

// Segment runs all three levels over a document and returns the leaf
// windows in document order.
func (s *Segmenter) Segment(doc *ocr.Document) []Leaf {
	var leaves []Leaf
	for _, major := range s.SplitMajor(doc) {
		for _, minor := range s.SplitMinor(major) {
			leaves = append(leaves, s.Pack(minor)...)
		}
	}
	return leaves
}

type boundary struct {
	line  int
	label string
}

// scanBoundaries walks lines in order and records a boundary wherever any
// pattern matches; the first matching pattern claims the line.
func scanBoundaries(lines []string, patterns []*regexp.Regexp) []boundary {
	var out []boundary
	for i, line := range lines {
		for _, re := range patterns {
			if re.MatchString(line) {
				out = append(out, boundary{line: i, label: strings.TrimSpace(line)})
				break
			}
		}
	}
	return out
}

// SplitMajor performs Level A: the page texts are concatenated into one
// line-indexed blob and split at major boundary lines. Zero boundaries
// means the whole document is one "General" section.
func (s *Segmenter) SplitMajor(doc *ocr.Document) []Major {
	combined := doc.CombinedText()
	lines := strings.Split(combined, "\n")
	bounds := scanBoundaries(lines, s.cat.Major)

	if len(bounds) == 0 {
		return []Major{{
			DocID:     doc.DocID,
			Label:     GeneralLabel,
			Text:      combined,
			Pages:     doc.Pages,
			LineStart: 0,
			LineEnd:   len(lines),
		}}
	}

	sections := make([]Major, 0, len(bounds))
	for i, b := range bounds {
		end := len(lines)
		if i+1 < len(bounds) {
			end = bounds[i+1].line
		}
		sections = append(sections, Major{
			DocID:     doc.DocID,
			Label:     b.label,
			Text:      strings.Join(lines[b.line:end], "\n"),
			Pages:     doc.Pages,
			LineStart: b.line,
			LineEnd:   end,
		})
	}
	return sections
}

// SplitMinor performs Level B inside one major section. Zero boundaries
// means the whole major section becomes a single minor section whose label
// is inherited from Level A.
func (s *Segmenter) SplitMinor(m Major) []Minor {
	lines := strings.Split(m.Text, "\n")
	bounds := scanBoundaries(lines, s.cat.Minor)

	if len(bounds) == 0 {
		return []Minor{{
			DocID:      m.DocID,
			MajorLabel: m.Label,
			Label:      m.Label,
			Inherited:  true,
			Text:       m.Text,
			Pages:      m.Pages,
			LineStart:  m.LineStart,
			LineEnd:    m.LineEnd,
		}}
	}

	sections := make([]Minor, 0, len(bounds))
	for i, b := range bounds {
		end := len(lines)
		if i+1 < len(bounds) {
			end = bounds[i+1].line
		}
		sections = append(sections, Minor{
			DocID:      m.DocID,
			MajorLabel: m.Label,
			Label:      b.label,
			Text:       strings.Join(lines[b.line:end], "\n"),
			Pages:      m.Pages,
			LineStart:  m.LineStart + b.line,
			LineEnd:    m.LineStart + end,
		})
	}
	return sections
}

// Pack performs Level C: sentence-like units are greedily accumulated into
// leaves bounded by the token window. Units are atomic — a sentence is
// never split across leaves.
func (s *Segmenter) Pack(m Minor) []Leaf {
	units := splitUnits(m.Text)

	var leaves []Leaf
	var buf strings.Builder
	tokens := 0
	index := 0

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return
		}
		leaves = append(leaves, Leaf{
			DocID:      m.DocID,
			MajorLabel: m.MajorLabel,
			MinorLabel: m.Label,
			Inherited:  m.Inherited,
			Text:       text,
			Tokens:     tokens,
			Pages:      m.Pages,
			LineStart:  m.LineStart,
			Index:      index,
		})
		index++
		buf.Reset()
		tokens = 0
	}

	for _, unit := range units {
		unitTokens := CountTokens(unit)
		if tokens+unitTokens > s.win.Max && tokens >= s.win.Min {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(unit)
		tokens += unitTokens
	}

	// The trailing buffer is kept only when it reaches the absolute
	// minimum; smaller remainders would make degenerate chunks.
	if tokens >= s.win.AbsMin {
		flush()
	}

	return leaves
}
