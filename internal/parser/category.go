package parser

import (
	"strings"

	"github.com/chatfin/finbot/internal/model"
)

// categoryMatch is the result of scoring candidate categories against a
// message.
type categoryMatch struct {
	Name       string
	Keywords   []string
	Confidence float64
}

// scoredCategory accumulates evidence for one candidate. Candidates are kept
// in insertion order so ties resolve deterministically: built-in table order
// first, then user categories.
type scoredCategory struct {
	name     string
	keywords []string
	score    float64
}

// matchCategory scores built-in and user-defined categories against text and
// returns the best match. A verbatim user category name short-circuits with
// confidence 0.95. Returns the zero value when nothing scores.
func (p *Parser) matchCategory(text string, userCategories []model.Category) categoryMatch {
	var candidates []scoredCategory
	index := make(map[string]int)

	for _, ck := range p.keywords {
		var score float64
		var matched []string

		for _, kw := range ck.Primary {
			if strings.Contains(text, kw) {
				score += 1.0 * ck.Weight
				matched = append(matched, kw)
			}
		}
		for _, kw := range ck.Secondary {
			if strings.Contains(text, kw) {
				score += 0.5 * ck.Weight
				matched = append(matched, kw+"*")
			}
		}

		if score > 0 {
			index[ck.Tag] = len(candidates)
			candidates = append(candidates, scoredCategory{name: ck.Tag, keywords: matched, score: score})
		}
	}

	// User categories take priority over the built-in vocabulary.
	for _, cat := range userCategories {
		nameLower := strings.ToLower(cat.Name)

		if strings.Contains(text, nameLower) {
			return categoryMatch{Name: cat.Name, Confidence: 0.95, Keywords: []string{nameLower}}
		}

		for _, word := range strings.Fields(nameLower) {
			if len([]rune(word)) <= 3 || !strings.Contains(text, word) {
				continue
			}
			if i, ok := index[cat.Name]; ok {
				if candidates[i].score < 2.5 {
					candidates[i].score = 2.5
					candidates[i].keywords = []string{word}
				}
			} else {
				index[cat.Name] = len(candidates)
				candidates = append(candidates, scoredCategory{name: cat.Name, keywords: []string{word}, score: 2.5})
			}
		}
	}

	if len(candidates) == 0 {
		return categoryMatch{}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}

	return categoryMatch{
		Name:       best.name,
		Keywords:   best.keywords,
		Confidence: scoreToConfidence(best.score),
	}
}

// scoreToConfidence maps a raw keyword score onto the calibrated confidence
// bands.
func scoreToConfidence(score float64) float64 {
	switch {
	case score >= 3.0:
		return 0.95
	case score >= 2.0:
		return 0.85
	case score >= 1.5:
		return 0.75
	case score >= 1.0:
		return 0.65
	default:
		return 0.45
	}
}
