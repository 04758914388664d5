package catalog

import (
	"reflect"
	"testing"
)

func TestFindCategories_SingleMatch(t *testing.T) {
	got := FindCategories("décomposer la tâche étape par étape et laisser du temps supplémentaire")
	want := []string{"slow_processing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindCategories_MultiLabel(t *testing.T) {
	// A block naming diagrams and repetition carries both tags, in rule order.
	got := FindCategories("utiliser un schéma en couleur puis répéter l'exercice")
	if len(got) < 2 {
		t.Fatalf("expected at least 2 categories, got %v", got)
	}
	if got[0] != "visual_learner" {
		t.Errorf("expected visual_learner first, got %v", got)
	}
	found := false
	for _, tag := range got {
		if tag == "needs_repetition" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected needs_repetition in %v", got)
	}
}

func TestFindCategories_GeneralSentinel(t *testing.T) {
	got := FindCategories("présentation du programme national")
	want := []string{GeneralCategory}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindCategories_EnglishKeywords(t *testing.T) {
	tests := []struct {
		lower string
		want  string
	}{
		{"provide step-by-step instructions", "slow_processing"},
		{"a hands-on workshop", "high_energy"},
		{"problem-solving session", "logical_learner"},
		{"praise each attempt", "sensitive_low_confidence"},
		{"keep a quiet environment", "easily_distracted"},
		{"weekly review and practice", "needs_repetition"},
		{"advanced challenge work", "fast_processor"},
	}
	for _, tt := range tests {
		got := FindCategories(tt.lower)
		found := false
		for _, tag := range got {
			if tag == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("FindCategories(%q): expected %q in %v", tt.lower, tt.want, got)
		}
	}
}
