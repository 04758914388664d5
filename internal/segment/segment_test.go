package segment

import (
	"strings"
	"testing"

	"github.com/tgallois/cursus/internal/catalog"
	"github.com/tgallois/cursus/internal/ocr"
)

func doc(pages ...string) *ocr.Document {
	d := &ocr.Document{DocID: "doc-1", Filename: "test.pdf"}
	for i, text := range pages {
		d.Pages = append(d.Pages, ocr.Page{Number: i + 1, Text: text})
	}
	return d
}

// sentences builds n copies of a ten-word sentence.
func sentences(n int) string {
	s := "Les élèves apprennent à lire des nombres entiers chaque jour. "
	return strings.TrimSpace(strings.Repeat(s, n))
}

func TestSegment_TinyDocumentDropped(t *testing.T) {
	// ~40 tokens, below the 50-token absolute minimum: zero leaves.
	s := New(catalog.Curriculum(), DefaultWindow())
	leaves := s.Segment(doc(sentences(4)))
	if len(leaves) != 0 {
		t.Errorf("expected 0 leaves for a 40-token document, got %d", len(leaves))
	}
}

func TestSegment_WindowLaw(t *testing.T) {
	// ~5000 tokens of uniform sentences: every leaf lands inside the window.
	s := New(catalog.Curriculum(), DefaultWindow())
	leaves := s.Segment(doc(sentences(500)))
	if len(leaves) < 10 {
		t.Fatalf("expected many leaves for a 5000-token document, got %d", len(leaves))
	}
	for i, leaf := range leaves {
		if leaf.Tokens < 50 {
			t.Errorf("leaf %d: %d tokens below absolute minimum", i, leaf.Tokens)
		}
		// Units are atomic, so a leaf may exceed Max by at most one unit.
		if leaf.Tokens > 300+10 {
			t.Errorf("leaf %d: %d tokens exceeds window maximum", i, leaf.Tokens)
		}
	}
	for i, leaf := range leaves[:len(leaves)-1] {
		if leaf.Tokens < 150 {
			t.Errorf("non-trailing leaf %d: %d tokens below window minimum", i, leaf.Tokens)
		}
	}
}

func TestSegment_LeafIndexSequential(t *testing.T) {
	s := New(catalog.Curriculum(), DefaultWindow())
	leaves := s.Segment(doc(sentences(100)))
	for i, leaf := range leaves {
		if leaf.Index != i {
			t.Errorf("leaf %d: expected index %d, got %d", i, i, leaf.Index)
		}
	}
}

func TestSplitMajor_NoBoundaryFallsBackToGeneral(t *testing.T) {
	s := New(catalog.Curriculum(), DefaultWindow())
	majors := s.SplitMajor(doc("Texte ordinaire.\nSans aucune frontière."))
	if len(majors) != 1 {
		t.Fatalf("expected 1 major section, got %d", len(majors))
	}
	if majors[0].Label != GeneralLabel {
		t.Errorf("expected label %q, got %q", GeneralLabel, majors[0].Label)
	}
}

func TestSplitMajor_BoundaryLines(t *testing.T) {
	text := "Préambule hors section.\n" +
		"Volet 1 : les apprentissages\n" +
		"Contenu du premier volet.\n" +
		"Mathématiques\n" +
		"Contenu consacré aux nombres et aux calculs."
	s := New(catalog.Curriculum(), DefaultWindow())
	majors := s.SplitMajor(doc(text))

	if len(majors) != 2 {
		t.Fatalf("expected 2 major sections, got %d", len(majors))
	}
	if majors[0].Label != "Volet 1 : les apprentissages" {
		t.Errorf("unexpected first label %q", majors[0].Label)
	}
	if majors[1].Label != "Mathématiques" {
		t.Errorf("unexpected second label %q", majors[1].Label)
	}
	// Preamble before the first boundary belongs to no section.
	if strings.Contains(majors[0].Text, "Préambule") {
		t.Error("preamble leaked into the first section")
	}
	if !strings.Contains(majors[1].Text, "nombres et aux calculs") {
		t.Error("second section lost its body text")
	}
}

func TestSplitMinor_NoBoundaryInheritsLabel(t *testing.T) {
	s := New(catalog.Curriculum(), DefaultWindow())
	m := Major{DocID: "doc-1", Label: "Mathématiques", Text: "Du texte sans en-tête pédagogique."}
	minors := s.SplitMinor(m)
	if len(minors) != 1 {
		t.Fatalf("expected 1 minor section, got %d", len(minors))
	}
	if !minors[0].Inherited {
		t.Error("expected inherited flag")
	}
	if minors[0].Label != "Mathématiques" {
		t.Errorf("expected inherited label, got %q", minors[0].Label)
	}
}

func TestSplitMinor_PedagogicalHeaders(t *testing.T) {
	text := "Mathématiques\n" +
		"Compétences travaillées\n" +
		"Chercher, modéliser, représenter.\n" +
		"Repères de progression\n" +
		"En début de cycle les nombres entiers."
	s := New(catalog.Curriculum(), DefaultWindow())
	minors := s.SplitMinor(Major{DocID: "doc-1", Label: "Mathématiques", Text: text})

	if len(minors) != 2 {
		t.Fatalf("expected 2 minor sections, got %d", len(minors))
	}
	if minors[0].Label != "Compétences travaillées" {
		t.Errorf("unexpected first label %q", minors[0].Label)
	}
	if minors[0].Inherited {
		t.Error("explicit header must not be flagged inherited")
	}
	if minors[1].Label != "Repères de progression" {
		t.Errorf("unexpected second label %q", minors[1].Label)
	}
	for _, m := range minors {
		if m.MajorLabel != "Mathématiques" {
			t.Errorf("expected major label to propagate, got %q", m.MajorLabel)
		}
	}
}

func TestPack_SentencesAreAtomic(t *testing.T) {
	// One long sentence with no terminator: kept whole even past Max.
	long := strings.Repeat("mot ", 400)
	s := New(catalog.Curriculum(), Window{Min: 150, Max: 300, AbsMin: 50})
	leaves := s.Pack(Minor{DocID: "doc-1", MajorLabel: "A", Label: "A", Text: long})
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf for a single unbreakable unit, got %d", len(leaves))
	}
	if leaves[0].Tokens != 400 {
		t.Errorf("expected 400 tokens, got %d", leaves[0].Tokens)
	}
}

func TestPack_TrailingRemainderDropped(t *testing.T) {
	// 300 tokens fill one leaf exactly; the 10-token tail is discarded.
	text := sentences(30) + " Une phrase restante de dix mots pour finir le texte."
	s := New(catalog.Curriculum(), Window{Min: 150, Max: 300, AbsMin: 50})
	leaves := s.Pack(Minor{DocID: "doc-1", MajorLabel: "A", Label: "A", Text: text})
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(leaves))
	}
	if strings.Contains(leaves[0].Text, "restante") {
		t.Error("trailing remainder must not join a flushed leaf")
	}
}

func TestNew_ClampsDegenerateWindow(t *testing.T) {
	s := New(catalog.Curriculum(), Window{})
	if s.win.Min != 150 || s.win.Max != 300 || s.win.AbsMin != 50 {
		t.Errorf("expected default window, got %+v", s.win)
	}
}

func TestCountTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"un", 1},
		{"un deux  trois\nquatre", 4},
	}
	for _, tt := range tests {
		if got := CountTokens(tt.text); got != tt.want {
			t.Errorf("CountTokens(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func TestSplitUnits(t *testing.T) {
	units := splitUnits("Première phrase. Deuxième phrase ! Troisième sans fin")
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d: %v", len(units), units)
	}
	if units[0] != "Première phrase." {
		t.Errorf("unexpected first unit %q", units[0])
	}
	if units[2] != "Troisième sans fin" {
		t.Errorf("unexpected trailing unit %q", units[2])
	}
}

func TestSplitUnits_AbbreviationNoSplitWithoutSpace(t *testing.T) {
	// A period not followed by whitespace does not end a unit.
	units := splitUnits("Voir p.12 pour la suite. Fin.")
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d: %v", len(units), units)
	}
}

func TestLeaf_PageSpan(t *testing.T) {
	leaf := Leaf{Pages: []ocr.Page{{Number: 3}, {Number: 4}, {Number: 7}}}
	start, end := leaf.PageSpan()
	if start != 3 || end != 7 {
		t.Errorf("expected span 3-7, got %d-%d", start, end)
	}
}
