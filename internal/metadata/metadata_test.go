package metadata

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tgallois/cursus/internal/segment"
)

func TestCurriculum_ExplicitCycleAndGrades(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Mathématiques",
		MinorLabel: "Compétences travaillées",
		Text:       "Au cycle 2, les élèves de CE1 et CE2 consolident la numération. " + filler(),
	}
	meta := e.Curriculum(leaf)

	if meta.Cycle != "2" {
		t.Errorf("expected cycle 2, got %q", meta.Cycle)
	}
	want := []string{"CE1", "CE2"}
	if !reflect.DeepEqual(meta.Grades, want) {
		t.Errorf("expected grades %v, got %v", want, meta.Grades)
	}
	if meta.IsCycleWide {
		t.Error("explicit grades must not flag cycle-wide")
	}
	if meta.Subject != "Mathématiques" {
		t.Errorf("expected subject from major label, got %q", meta.Subject)
	}
}

func TestCurriculum_DefaultCycleBackfill(t *testing.T) {
	// No cycle and no grades in text: default cycle, grade backfill,
	// cycle-wide flag.
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Français",
		MinorLabel: "Français",
		Inherited:  true,
		Text:       "Les attendus portent sur la lecture et la compréhension. " + filler(),
	}
	meta := e.Curriculum(leaf)

	if meta.Cycle != "3" {
		t.Errorf("expected default cycle 3, got %q", meta.Cycle)
	}
	if !meta.IsCycleWide {
		t.Error("expected cycle-wide when no grade is named")
	}
	want := []string{"CM1", "CM2", "6e"}
	if !reflect.DeepEqual(meta.Grades, want) {
		t.Errorf("expected backfilled grades %v, got %v", want, meta.Grades)
	}
}

func TestCurriculum_CycleWideIndicatorKeepsGrades(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Mathématiques",
		MinorLabel: "Repères de progression",
		Text:       "Ces repères valent pour tout le cycle, du CM1 à la 6e. " + filler(),
	}
	meta := e.Curriculum(leaf)

	if !meta.IsCycleWide {
		t.Error("expected cycle-wide from indicator phrase")
	}
	// Named grades survive the cycle-wide flag.
	want := []string{"CM1", "6e"}
	if !reflect.DeepEqual(meta.Grades, want) {
		t.Errorf("expected named grades %v, got %v", want, meta.Grades)
	}
}

func TestCurriculum_SectionTypeFromMinorLabel(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Mathématiques",
		MinorLabel: "Compétences travaillées",
		Text:       "Chercher, modéliser, représenter, raisonner, calculer, communiquer. " + filler(),
	}
	meta := e.Curriculum(leaf)
	if meta.SectionType != "competencies" {
		t.Errorf("expected competencies from header label, got %q", meta.SectionType)
	}
}

func TestCurriculum_InheritedLabelSkipsSectionType(t *testing.T) {
	// An inherited label is not a real header: section type falls back to
	// general rather than classifying the major label.
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Volet 1 : les apprentissages",
		MinorLabel: "Volet 1 : les apprentissages",
		Inherited:  true,
		Text:       "Description sans mot-clé de classement. " + filler(),
	}
	meta := e.Curriculum(leaf)
	if meta.SectionType != "general" {
		t.Errorf("expected general for inherited label, got %q", meta.SectionType)
	}
}

func TestCurriculum_TopicFromHeadingLine(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Mathématiques",
		MinorLabel: "Repères de progression",
		Text:       "Nombres entiers et calcul\nEn début de cycle les élèves travaillent la numération. " + filler(),
	}
	meta := e.Curriculum(leaf)
	if meta.Topic != "Nombres entiers et calcul" {
		t.Errorf("expected heading topic, got %q", meta.Topic)
	}
	if meta.Subtopic != meta.Topic {
		t.Errorf("expected subtopic to mirror topic, got %q", meta.Subtopic)
	}
}

func TestCurriculum_TopicFallsBackToMinorLabel(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Mathématiques",
		MinorLabel: "Repères de progression",
		Text:       "texte en minuscules sans titre ni étiquette exploitable. " + filler(),
	}
	meta := e.Curriculum(leaf)
	if meta.Topic != "Repères de progression" {
		t.Errorf("expected minor label topic, got %q", meta.Topic)
	}
}

func TestGuide_TypeAndCategories(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Chapitre 2 : la numération",
		MinorLabel: "Stratégies pédagogiques",
		Text:       "Une stratégie efficace : décomposer la tâche étape par étape avec un schéma en couleur pour les élèves de CM1. " + filler(),
	}
	meta := e.Guide(leaf)

	if meta.GuideType != "strategy" {
		t.Errorf("expected strategy, got %q", meta.GuideType)
	}
	if meta.IsGeneral {
		t.Error("named grade must not flag general")
	}
	if !reflect.DeepEqual(meta.Grades, []string{"CM1"}) {
		t.Errorf("expected [CM1], got %v", meta.Grades)
	}
	hasVisual, hasSlow := false, false
	for _, c := range meta.Categories {
		if c == "visual_learner" {
			hasVisual = true
		}
		if c == "slow_processing" {
			hasSlow = true
		}
	}
	if !hasVisual || !hasSlow {
		t.Errorf("expected visual_learner and slow_processing in %v", meta.Categories)
	}
	if meta.Topic != "Chapitre 2 : la numération" {
		t.Errorf("unexpected topic %q", meta.Topic)
	}
	if meta.SectionHeader != "Stratégies pédagogiques" {
		t.Errorf("unexpected section header %q", meta.SectionHeader)
	}
}

func TestGuide_GeneralBackfill(t *testing.T) {
	e := NewExtractor("3")
	leaf := segment.Leaf{
		DocID:      "doc-1",
		MajorLabel: "Chapitre 1",
		MinorLabel: "Chapitre 1",
		Inherited:  true,
		Text:       "Présentation du contenu sans mention de classe. " + filler(),
	}
	meta := e.Guide(leaf)

	if !meta.IsGeneral {
		t.Error("expected general when no grade is named")
	}
	want := []string{"CM1", "CM2", "6e"}
	if !reflect.DeepEqual(meta.Grades, want) {
		t.Errorf("expected backfilled grades %v, got %v", want, meta.Grades)
	}
	if meta.SectionHeader != segment.GeneralLabel {
		t.Errorf("expected General header for inherited label, got %q", meta.SectionHeader)
	}
	if meta.Subtopic != "Chapitre 1" {
		t.Errorf("expected subtopic to fall back to topic, got %q", meta.Subtopic)
	}
	if !reflect.DeepEqual(meta.Categories, []string{"general"}) {
		t.Errorf("expected sentinel category, got %v", meta.Categories)
	}
}

func TestFindTopic_LengthBounds(t *testing.T) {
	// Candidates outside 10-100 characters are skipped.
	if got := findTopic("Court\ndu texte ordinaire."); got != "" {
		t.Errorf("expected no topic for a 5-char heading, got %q", got)
	}
	long := "T" + strings.Repeat("x", 120)
	if got := findTopic(long + "\ndu texte ordinaire."); got != "" {
		t.Errorf("expected no topic for an overlong heading, got %q", got)
	}

	// Bounds count characters, not bytes: 8 accented characters span 16
	// bytes but stay under the 10-character floor.
	if got := findTopic("Éééééééé\ndu texte ordinaire."); got != "" {
		t.Errorf("expected no topic for an 8-char accented heading, got %q", got)
	}
	accented := "É" + strings.Repeat("é", 98)
	if got := findTopic(accented + "\ndu texte ordinaire."); got != accented {
		t.Errorf("expected 99-char accented heading as topic, got %q", got)
	}
}

func TestFindTopic_ColonLabel(t *testing.T) {
	got := findTopic("voir la partie Grandeurs et mesures : les longueurs se comparent.")
	if got != "Grandeurs et mesures" {
		t.Errorf("expected colon label topic, got %q", got)
	}
}

// filler pads leaf text so topic heuristics have a realistic body to scan.
func filler() string {
	return "Les activités proposées permettent un entraînement quotidien et progressif."
}
