package parser

import (
	"math"
	"strings"
)

// fuseConfidence combines the amount and category sub-scores into one
// overall confidence.
//
// Calibration targets: "50k taxi" >= 0.85 (high), a bare amount or a bare
// category lands in the 0.3–0.85 band (medium), unintelligible input floors
// at 0.1.
func fuseConfidence(hasAmount bool, amountConfidence float64, hasCategory bool, categoryConfidence float64, matchedKeywords int, text string) float64 {
	if !hasAmount && !hasCategory {
		return 0.1
	}

	if !hasAmount {
		return math.Max(0.3, categoryConfidence*0.6)
	}

	if !hasCategory {
		return math.Max(0.3, amountConfidence*0.6)
	}

	confidence := amountConfidence*0.5 + categoryConfidence*0.5

	// Multiple keyword hits corroborate the category.
	if matchedKeywords >= 2 {
		confidence = minFloat(0.98, confidence*1.1)
	}

	// Short messages with a keyword hit leave little room for ambiguity.
	if len(strings.Fields(text)) <= 4 && matchedKeywords >= 1 {
		confidence = minFloat(0.95, confidence*1.05)
	}

	// Exact third-decimal ties round to even.
	return math.RoundToEven(confidence*1000) / 1000
}
