// Package validate enforces the invariants a chunk must satisfy before it
// is eligible for storage. Validation is a pure predicate: a nil result is
// an accept, a non-nil Violation names the specific failing rule.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tgallois/cursus/internal/chunk"
)

// MinChunkChars is the minimum length of chunk text after trimming,
// counted in characters rather than bytes.
const MinChunkChars = 50

// Rule names, reported on rejection.
const (
	RuleRequiredField    = "required_field"
	RuleGradeConsistency = "grade_consistency"
	RuleCategoryPresence = "category_presence"
	RulePageOrder        = "page_order"
	RuleTextLength       = "text_length"
)

// Violation identifies the rule a chunk failed and the field involved.
type Violation struct {
	Rule  string
	Field string
}

func (v *Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("validation failed: %s", v.Rule)
	}
	return fmt.Sprintf("validation failed: %s (%s)", v.Rule, v.Field)
}

type fieldValue struct {
	field string
	value string
}

func firstEmpty(fields []fieldValue) *Violation {
	for _, fv := range fields {
		if strings.TrimSpace(fv.value) == "" {
			return &Violation{Rule: RuleRequiredField, Field: fv.field}
		}
	}
	return nil
}

// Curriculum checks a curriculum chunk. Rules run in order; the first
// failure is returned.
func Curriculum(c *chunk.CurriculumChunk) *Violation {
	if v := firstEmpty([]fieldValue{
		{"id", c.ID},
		{"doc_id", c.DocID},
		{"cycle", c.Cycle},
		{"subject", c.Subject},
		{"section_type", c.SectionType},
		{"topic", c.Topic},
		{"subtopic", c.Subtopic},
		{"source_paragraph_id", c.SourceParagraphID},
		{"lang", c.Lang},
	}); v != nil {
		return v
	}
	if !c.IsCycleWide && len(c.Grades) == 0 {
		return &Violation{Rule: RuleGradeConsistency, Field: "grades"}
	}
	if c.PageStart > c.PageEnd {
		return &Violation{Rule: RulePageOrder, Field: "page_start"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.ChunkText)) < MinChunkChars {
		return &Violation{Rule: RuleTextLength, Field: "chunk_text"}
	}
	return nil
}

// Guide checks a teaching-guide chunk.
func Guide(c *chunk.GuideChunk) *Violation {
	if v := firstEmpty([]fieldValue{
		{"id", c.ID},
		{"doc_id", c.DocID},
		{"guide_type", c.GuideType},
		{"topic", c.Topic},
		{"subtopic", c.Subtopic},
		{"section_header", c.SectionHeader},
		{"lang", c.Lang},
	}); v != nil {
		return v
	}
	if !c.IsGeneral && len(c.ApplicableGrades) == 0 {
		return &Violation{Rule: RuleGradeConsistency, Field: "applicable_grades"}
	}
	if len(c.ApplicableCategories) == 0 {
		return &Violation{Rule: RuleCategoryPresence, Field: "applicable_categories"}
	}
	if c.PageStart > c.PageEnd {
		return &Violation{Rule: RulePageOrder, Field: "page_start"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.ChunkText)) < MinChunkChars {
		return &Violation{Rule: RuleTextLength, Field: "chunk_text"}
	}
	return nil
}
