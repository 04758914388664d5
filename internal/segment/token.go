package segment

import (
	"strings"
	"unicode"
)

// CountTokens approximates token count as the whitespace-delimited word
// count. Exact tokenization is not required for windowing.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}

// splitUnits breaks text into sentence-like units: a unit ends at
// terminal punctuation followed by whitespace. Newlines inside a unit are
// preserved so lists and clauses stay whole.
func splitUnits(text string) []string {
	var units []string
	var cur strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			unit := strings.TrimSpace(cur.String())
			if unit != "" {
				units = append(units, unit)
			}
			cur.Reset()
			// Skip the whitespace run separating units.
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if unit := strings.TrimSpace(cur.String()); unit != "" {
		units = append(units, unit)
	}
	return units
}
