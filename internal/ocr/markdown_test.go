package ocr

import (
	"strings"
	"testing"
)

func TestMarkdownToText_HeadingsKeepOwnLines(t *testing.T) {
	md := "# Mathématiques\n\nLes élèves travaillent la numération.\n\n## Compétences travaillées\n\nChercher et modéliser."
	got := MarkdownToText(md)

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Mathématiques" {
		t.Errorf("expected stripped heading, got %q", lines[0])
	}
	if lines[2] != "Compétences travaillées" {
		t.Errorf("expected second heading on its own line, got %q", lines[2])
	}
}

func TestMarkdownToText_InlineMarkupStripped(t *testing.T) {
	got := MarkdownToText("Un texte avec **gras**, *italique* et [lien](https://example.org).")
	want := "Un texte avec gras, italique et lien."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownToText_ListItems(t *testing.T) {
	got := MarkdownToText("- premier point\n- deuxième point\n")
	if !strings.Contains(got, "premier point") || !strings.Contains(got, "deuxième point") {
		t.Errorf("expected list items in output, got %q", got)
	}
	// No duplicated text from raw lines plus inline children.
	if strings.Count(got, "premier point") != 1 {
		t.Errorf("list item text duplicated in %q", got)
	}
}

func TestMarkdownToText_Empty(t *testing.T) {
	if got := MarkdownToText(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
