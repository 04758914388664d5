// Package catalog holds the boundary-detection and vocabulary patterns used
// to segment and tag French curriculum and teaching-guide documents. The
// catalog is immutable configuration data: build one with Curriculum() or
// TeachingGuide() and pass it explicitly to the segmenter and extractor so
// tests can swap pattern sets.
package catalog

import (
	"regexp"
	"strings"
)

// Catalog bundles the pattern sets for one document family.
type Catalog struct {
	// Major holds Level-A boundary patterns (cycle/volet/subject names for
	// curriculum documents, chapter markers for teaching guides).
	Major []*regexp.Regexp
	// Minor holds Level-B boundary patterns (pedagogical section headers).
	Minor []*regexp.Regexp
}

// Grade tokens in scan order. Two-letter codes are matched before the
// single-digit collège grades so "CM1" never half-matches.
var gradeTokens = []string{"CP", "CE1", "CE2", "CM1", "CM2", "6e", "5e", "4e", "3e"}

var gradePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(gradeTokens))
	for _, g := range gradeTokens {
		out = append(out, regexp.MustCompile(`(?i)\b`+g+`\b`))
	}
	return out
}()

// GradeMappings maps lowercase grade variants to canonical labels.
var GradeMappings = map[string]string{
	"cp": "CP", "ce1": "CE1", "ce2": "CE2",
	"cm1": "CM1", "cm2": "CM2",
	"6e": "6e", "5e": "5e", "4e": "4e", "3e": "3e",
}

// CanonicalGrade maps a grade spelled in any case ("cm1", " CE2") to its
// canonical label. The second return is false for unknown grades.
func CanonicalGrade(s string) (string, bool) {
	g, ok := GradeMappings[strings.ToLower(strings.TrimSpace(s))]
	return g, ok
}

// CycleGrades maps a cycle to its default grade list, used to backfill
// cycle-wide chunks that name no grade explicitly.
var CycleGrades = map[string][]string{
	"2": {"CE1", "CE2", "CM1", "CM2"},
	"3": {"CM1", "CM2", "6e"},
}

type subjectMapping struct {
	variant   string
	canonical string
}

// subjectMappings maps lowercase subject variants to canonical labels.
// Ordered so that first-match-wins stays deterministic.
var subjectMappings = []subjectMapping{
	{"français", "Français"},
	{"francais", "Français"},
	{"mathématiques", "Mathématiques"},
	{"mathematiques", "Mathématiques"},
	{"sciences et technologie", "Sciences et technologie"},
	{"histoire et géographie", "Histoire et géographie"},
	{"enseignement moral et civique", "Enseignement moral et civique"},
	{"éducation artistique", "Éducation artistique"},
	{"langues vivantes", "Langues vivantes"},
	{"éducation physique et sportive", "Éducation physique et sportive"},
}

// sectionTypeRule maps a lowercase header fragment to a canonical section
// type. Ordered: the first matching rule wins.
type sectionTypeRule struct {
	key  string
	name string
}

var sectionTypeRules = []sectionTypeRule{
	{"objectifs", "objectives"},
	{"finalités", "objectives"},
	{"compétences", "competencies"},
	{"connaissances", "knowledge"},
	{"repères de progression", "progression"},
	{"situations d'apprentissage", "learning_situations"},
	{"volet", "subject_area"},
}

var cycleRe = regexp.MustCompile(`(?i)cycle\s*([1234])`)

// CycleWideIndicators are phrases marking content as applying to the whole
// cycle regardless of named grades.
var CycleWideIndicators = []string{"tout le cycle", "cycle entier", "tous niveaux"}

// GuideTypeRules classify teaching-guide text, first match wins; text
// matching none is "pedagogical".
type GuideTypeRule struct {
	Type    string
	Pattern *regexp.Regexp
}

var GuideTypeRules = []GuideTypeRule{
	{"strategy", regexp.MustCompile(`(?i)stratégie|méthode|approche`)},
	{"activity", regexp.MustCompile(`(?i)activité|exercice|pratique`)},
	{"assessment", regexp.MustCompile(`(?i)évaluation|test|contrôle`)},
}

// DefaultGuideType is assigned when no guide-type rule matches.
const DefaultGuideType = "pedagogical"

// Curriculum returns the pattern catalog for curriculum (programme)
// documents.
func Curriculum() *Catalog {
	return &Catalog{
		Major: compile(
			`Volet\s*[123]`,
			`Cycle\s*[1234]`,
			`Français`,
			`Mathématiques`,
			`Sciences\s+et\s+technologie`,
			`Histoire\s+et\s+géographie`,
			`Enseignement\s+moral\s+et\s+civique`,
			`Éducation\s+artistique`,
			`Langues\s+vivantes`,
			`Éducation\s+physique\s+et\s+sportive`,
		),
		Minor: compile(
			`Objectifs\s*/\s*finalités`,
			`Compétences\s+travaillées`,
			`Connaissances\s+et\s+compétences\s+associées`,
			`Repères\s+de\s+progression`,
			`Situations\s+d['']?apprentissage`,
		),
	}
}

// TeachingGuide returns the pattern catalog for teaching-guide documents.
func TeachingGuide() *Catalog {
	return &Catalog{
		Major: compile(
			`Chapitre\s+\d+`,
			`Chapter\s+\d+`,
			`Partie\s+\d+`,
			`Section\s+\d+`,
		),
		Minor: compile(
			`Stratégies\s+pédagogiques`,
			`Objectifs\s+d['']apprentissage`,
			`Activités\s+proposées`,
			`Évaluation`,
			`Ressources`,
			`Conseils\s+pratiques`,
			`Différenciation`,
			`Progression`,
		),
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// FindGrades collects every grade token present in text, in canonical scan
// order and without duplicates.
func FindGrades(text string) []string {
	var grades []string
	for i, re := range gradePatterns {
		if re.MatchString(text) {
			grades = append(grades, gradeTokens[i])
		}
	}
	return grades
}

// FindCycle returns the first cycle digit named in text, or "" if none.
func FindCycle(text string) string {
	m := cycleRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// FindSubject returns the canonical subject named in lowered text, first
// match wins, or "" if none.
func FindSubject(lower string) string {
	for _, m := range subjectMappings {
		if strings.Contains(lower, m.variant) {
			return m.canonical
		}
	}
	return ""
}

// FindSectionType returns the canonical section type for lowered text,
// first matching rule wins, or "" if none.
func FindSectionType(lower string) string {
	for _, rule := range sectionTypeRules {
		if strings.Contains(lower, rule.key) {
			return rule.name
		}
	}
	return ""
}

// FindGuideType classifies lowered teaching-guide text.
func FindGuideType(lower string) string {
	for _, rule := range GuideTypeRules {
		if rule.Pattern.MatchString(lower) {
			return rule.Type
		}
	}
	return DefaultGuideType
}

// IsCycleWideText reports whether text contains an explicit whole-cycle
// indicator phrase.
func IsCycleWideText(lower string) bool {
	for _, ind := range CycleWideIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
