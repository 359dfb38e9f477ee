// Package classify derives study metadata (key concepts, difficulty) from
// raw content using keyword heuristics. It runs locally so results stay
// consistent whether the explanation itself was generated, cached or a
// fallback.
package classify

import (
	"strings"

	"github.com/estudia-app/estudia/domains/explanation"
)

var mathKeywords = []string{"ecuación", "función", "derivada", "integral", "límite", "matriz", "vector"}
var physicsKeywords = []string{"fuerza", "energía", "velocidad", "aceleración", "masa", "momento"}
var chemistryKeywords = []string{"átomo", "molécula", "reacción", "enlace", "ion", "ph", "concentración"}

var advancedKeywords = []string{"derivada", "integral", "límite", "transformada", "ecuación diferencial"}
var intermediateKeywords = []string{"función", "ecuación", "sistema", "matriz"}

// Concepts returns every known subject keyword present in the text, in
// subject order (math, then physics, then chemistry). Matching is
// case-insensitive substring containment.
func Concepts(text string) []string {
	lower := strings.ToLower(text)
	concepts := []string{}
	for _, group := range [][]string{mathKeywords, physicsKeywords, chemistryKeywords} {
		for _, keyword := range group {
			if strings.Contains(lower, keyword) {
				concepts = append(concepts, keyword)
			}
		}
	}
	return concepts
}

// Difficulty buckets the text by the most advanced keyword it contains.
// Advanced keywords win over intermediate ones; anything else is beginner.
func Difficulty(text string) explanation.Difficulty {
	lower := strings.ToLower(text)
	for _, keyword := range advancedKeywords {
		if strings.Contains(lower, keyword) {
			return explanation.DifficultyAdvanced
		}
	}
	for _, keyword := range intermediateKeywords {
		if strings.Contains(lower, keyword) {
			return explanation.DifficultyIntermediate
		}
	}
	return explanation.DifficultyBeginner
}
