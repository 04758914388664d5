// Package metadata infers structured attributes for segmented text blocks.
// Extraction is pure and deterministic: first match wins for cycle, subject,
// section type and guide type; grades and categories are the union of all
// matches.
package metadata

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tgallois/cursus/internal/catalog"
	"github.com/tgallois/cursus/internal/segment"
)

// Curriculum is the metadata record for a curriculum chunk.
type Curriculum struct {
	Cycle       string
	Grades      []string
	Subject     string
	SectionType string
	Topic       string
	Subtopic    string
	IsCycleWide bool
}

// Guide is the metadata record for a teaching-guide chunk.
type Guide struct {
	GuideType     string
	Grades        []string
	Categories    []string
	Topic         string
	Subtopic      string
	SectionHeader string
	IsGeneral     bool
}

// Extractor infers metadata records from leaf text plus the labels
// inherited from the enclosing sections.
type Extractor struct {
	defaultCycle string
}

func NewExtractor(defaultCycle string) *Extractor {
	if defaultCycle == "" {
		defaultCycle = "3"
	}
	return &Extractor{defaultCycle: defaultCycle}
}

// Curriculum extracts the curriculum metadata record for a leaf.
func (e *Extractor) Curriculum(leaf segment.Leaf) Curriculum {
	lower := strings.ToLower(leaf.Text)

	cycle := catalog.FindCycle(lower)
	if cycle == "" {
		cycle = e.defaultCycle
	}

	grades := catalog.FindGrades(leaf.Text)

	subject := catalog.FindSubject(lower)
	if subject == "" {
		// Fall back to the label inherited from the enclosing section.
		subject = catalog.FindSubject(strings.ToLower(leaf.MajorLabel))
	}
	if subject == "" {
		subject = leaf.MajorLabel
	}
	if subject == "" {
		subject = segment.GeneralLabel
	}

	sectionType := catalog.FindSectionType(lower)
	if sectionType == "" && !leaf.Inherited {
		sectionType = catalog.FindSectionType(strings.ToLower(leaf.MinorLabel))
	}
	if sectionType == "" {
		sectionType = "general"
	}

	topic := findTopic(leaf.Text)
	if topic == "" {
		if leaf.Inherited {
			topic = subject
		} else {
			topic = leaf.MinorLabel
		}
	}

	isCycleWide := len(grades) == 0 || catalog.IsCycleWideText(lower)
	if len(grades) == 0 {
		// Cycle-wide chunks carry the default grade list for their cycle.
		grades = append(grades, catalog.CycleGrades[cycle]...)
	}

	return Curriculum{
		Cycle:       cycle,
		Grades:      grades,
		Subject:     subject,
		SectionType: sectionType,
		Topic:       topic,
		Subtopic:    topic,
		IsCycleWide: isCycleWide,
	}
}

// Guide extracts the teaching-guide metadata record for a leaf.
func (e *Extractor) Guide(leaf segment.Leaf) Guide {
	lower := strings.ToLower(leaf.Text)

	guideType := catalog.FindGuideType(lower)

	grades := catalog.FindGrades(leaf.Text)
	isGeneral := len(grades) == 0
	if isGeneral {
		grades = append(grades, catalog.CycleGrades[e.defaultCycle]...)
	}

	topic := leaf.MajorLabel
	if topic == "" {
		topic = segment.GeneralLabel
	}
	subtopic := leaf.MinorLabel
	sectionHeader := leaf.MinorLabel
	if leaf.Inherited {
		subtopic = topic
		sectionHeader = segment.GeneralLabel
	}

	return Guide{
		GuideType:     guideType,
		Grades:        grades,
		Categories:    catalog.FindCategories(lower),
		Topic:         topic,
		Subtopic:      subtopic,
		SectionHeader: sectionHeader,
		IsGeneral:     isGeneral,
	}
}

var (
	// Heading-like line: starts with an uppercase letter, no sentence
	// punctuation, the whole line.
	headingLineRe = regexp.MustCompile(`(?m)^([A-ZÀ-Ý][^.!?\n]*)$`)
	// Colon-terminated label fragment.
	colonLabelRe = regexp.MustCompile(`([A-ZÀ-Ý][^.!?\n:]*):`)
)

// findTopic looks for a heading-like or colon-terminated line to use as the
// chunk topic. Candidates outside 10–100 characters are skipped.
func findTopic(text string) string {
	for _, re := range []*regexp.Regexp{headingLineRe, colonLabelRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(strings.TrimSuffix(m[1], ":"))
			if n := utf8.RuneCountInString(candidate); n > 10 && n < 100 {
				return candidate
			}
		}
	}
	return ""
}
