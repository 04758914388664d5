package chunk

import (
	"testing"

	"github.com/tgallois/cursus/internal/metadata"
	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/segment"
)

func testLeaf() segment.Leaf {
	return segment.Leaf{
		DocID:      "abc123",
		MajorLabel: "Mathématiques",
		MinorLabel: "Compétences travaillées",
		Text:       "Chercher, modéliser et représenter des situations numériques variées.",
		Tokens:     9,
		Pages:      []ocr.Page{{Number: 4}, {Number: 5}},
		LineStart:  12,
		Index:      2,
	}
}

func testCurriculumMeta() metadata.Curriculum {
	return metadata.Curriculum{
		Cycle:       "3",
		Grades:      []string{"CM1", "CM2"},
		Subject:     "Mathématiques",
		SectionType: "competencies",
		Topic:       "Nombres et calculs",
		Subtopic:    "Nombres et calculs",
	}
}

func TestCurriculum_FieldMapping(t *testing.T) {
	a := NewAssembler("fr")
	c, err := a.Curriculum(testLeaf(), testCurriculumMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.DocID != "abc123" {
		t.Errorf("unexpected doc_id %q", c.DocID)
	}
	if c.PageStart != 4 || c.PageEnd != 5 {
		t.Errorf("expected page span 4-5, got %d-%d", c.PageStart, c.PageEnd)
	}
	if c.TokenCount != 9 {
		t.Errorf("expected 9 tokens, got %d", c.TokenCount)
	}
	if c.Lang != "fr" {
		t.Errorf("expected lang fr, got %q", c.Lang)
	}
	if c.SourceParagraphID != "Mathématiques_Nombres et calculs_12_2" {
		t.Errorf("unexpected source paragraph id %q", c.SourceParagraphID)
	}
	if len(c.ID) != 16 {
		t.Errorf("expected 16-char id, got %q", c.ID)
	}
}

func TestCurriculum_IDDeterministic(t *testing.T) {
	a := NewAssembler("fr")
	c1, err := a.Curriculum(testLeaf(), testCurriculumMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, err := a.Curriculum(testLeaf(), testCurriculumMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c1.ID != c2.ID {
		t.Errorf("expected identical ids, got %q and %q", c1.ID, c2.ID)
	}
}

func TestCurriculum_IDVariesByPosition(t *testing.T) {
	// Two leaves in the same section differ only by index; their ids must
	// not collide.
	a := NewAssembler("fr")
	leaf1 := testLeaf()
	leaf2 := testLeaf()
	leaf2.Index = 3

	c1, _ := a.Curriculum(leaf1, testCurriculumMeta())
	c2, _ := a.Curriculum(leaf2, testCurriculumMeta())
	if c1.ID == c2.ID {
		t.Errorf("expected distinct ids for distinct positions, both %q", c1.ID)
	}
}

func TestCurriculum_MissingFields(t *testing.T) {
	a := NewAssembler("fr")

	leaf := testLeaf()
	leaf.DocID = "  "
	if _, err := a.Curriculum(leaf, testCurriculumMeta()); err == nil {
		t.Error("expected error for blank doc_id")
	}

	leaf = testLeaf()
	leaf.Text = ""
	if _, err := a.Curriculum(leaf, testCurriculumMeta()); err == nil {
		t.Error("expected error for empty text")
	}

	leaf = testLeaf()
	leaf.Pages = nil
	if _, err := a.Curriculum(leaf, testCurriculumMeta()); err == nil {
		t.Error("expected error for missing pages")
	}
}

func TestGuide_FieldMapping(t *testing.T) {
	a := NewAssembler("fr")
	meta := metadata.Guide{
		GuideType:     "strategy",
		Grades:        []string{"CM1"},
		Categories:    []string{"visual_learner"},
		Topic:         "Chapitre 2",
		Subtopic:      "Stratégies pédagogiques",
		SectionHeader: "Stratégies pédagogiques",
	}
	g, err := a.Guide(testLeaf(), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.GuideType != "strategy" {
		t.Errorf("unexpected guide type %q", g.GuideType)
	}
	if len(g.ApplicableCategories) != 1 || g.ApplicableCategories[0] != "visual_learner" {
		t.Errorf("unexpected categories %v", g.ApplicableCategories)
	}
	if g.PageStart != 4 || g.PageEnd != 5 {
		t.Errorf("expected page span 4-5, got %d-%d", g.PageStart, g.PageEnd)
	}
	if len(g.ID) != 16 {
		t.Errorf("expected 16-char id, got %q", g.ID)
	}
}

func TestGuide_IDVariesByGuideType(t *testing.T) {
	a := NewAssembler("fr")
	meta := metadata.Guide{GuideType: "strategy", Topic: "Chapitre 2"}
	g1, _ := a.Guide(testLeaf(), meta)
	meta.GuideType = "activity"
	g2, _ := a.Guide(testLeaf(), meta)
	if g1.ID == g2.ID {
		t.Errorf("expected distinct ids for distinct guide types, both %q", g1.ID)
	}
}

func TestNewAssembler_DefaultLang(t *testing.T) {
	a := NewAssembler("")
	c, err := a.Curriculum(testLeaf(), testCurriculumMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lang != "fr" {
		t.Errorf("expected default lang fr, got %q", c.Lang)
	}
}
