package catalog

import "regexp"

// GeneralCategory is the sentinel assigned when no learning-category
// keyword group matches a text block.
const GeneralCategory = "general"

// CategoryRule ties a learning-category tag to its keyword disjunction.
// Detection is multi-label: every matching rule contributes its tag.
type CategoryRule struct {
	Tag     string
	Pattern *regexp.Regexp
}

// CategoryRules holds the keyword groups for the eight learning categories.
// Keywords cover both French guide vocabulary and the English terms OCR
// tends to leave untranslated.
var CategoryRules = []CategoryRule{
	{"visual_learner", regexp.MustCompile(`(?i)diagram|diagramme|schéma|chart|graphique|tableau|image|illustration|couleur|color|carte mentale|map|vidéo|video|visuel|visual|pictogramme`)},
	{"slow_processing", regexp.MustCompile(`(?i)step[- ]by[- ]step|étape par étape|extra time|temps supplémentaire|rythme|décomposer|simplifi|une consigne à la fois|patiemment|lentement`)},
	{"fast_processor", regexp.MustCompile(`(?i)défi|challenge|enrichissement|approfondissement|avancé|advanced|autonomie|aller plus loin|complexifier`)},
	{"high_energy", regexp.MustCompile(`(?i)mouvement|movement|manipulation|manipuler|hands[- ]on|bouger|jeu de rôle|atelier tournant|pause active|kinesthésique`)},
	{"logical_learner", regexp.MustCompile(`(?i)logique|logic|raisonnement|reasoning|séquence|sequence|résolution de problème|problem[- ]solving|structure|classement|catégoriser`)},
	{"sensitive_low_confidence", regexp.MustCompile(`(?i)confiance|confidence|encouragement|encourager|valoriser|rassurer|bienveillan|féliciter|praise|dédramatiser`)},
	{"easily_distracted", regexp.MustCompile(`(?i)concentration|attention|distraction|environnement calme|quiet|consigne courte|focus|limiter les stimuli|recentrer`)},
	{"needs_repetition", regexp.MustCompile(`(?i)répétition|repetition|répéter|réviser|revoir|review|consolidation|rappel|reformuler|pratique régulière|practice`)},
}

// FindCategories applies every keyword group to lowered text independently
// and returns all matching tags in rule order. No categories matched means
// the single sentinel general tag.
func FindCategories(lower string) []string {
	var tags []string
	for _, rule := range CategoryRules {
		if rule.Pattern.MatchString(lower) {
			tags = append(tags, rule.Tag)
		}
	}
	if len(tags) == 0 {
		return []string{GeneralCategory}
	}
	return tags
}
