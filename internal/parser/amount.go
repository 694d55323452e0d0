package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Compiled once and shared read-only across parse calls.
var (
	// amountPattern matches a numeric token with an optional thousand
	// suffix, bounded by start-of-string, whitespace, or comma.
	amountPattern = regexp.MustCompile(`(?i)(?:^|[\s,])(\d+(?:[.,]\d+)?)\s*(k|к|thousand|thous|тысяч|т)?(?:[\s,]|$)`)

	// currencyPattern matches a currency symbol followed by a number.
	currencyPattern = regexp.MustCompile(`[$€£₽]\s*(\d+(?:[.,]\d+)?)`)
)

// extractAmount finds the first monetary quantity in text. Currency-symbol
// forms win over bare numbers and never take a magnitude suffix. When
// multiple numeric tokens are present, the first match in scan order is used.
// A parsed zero is not a monetary quantity; amounts are strictly positive.
func extractAmount(text string) (amount float64, confidence float64, found bool) {
	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			if v == 0 {
				return 0, 0, false
			}
			return v, 0.95, true
		}
	}

	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v == 0 {
		return 0, 0, false
	}

	if m[2] != "" {
		v *= 1000
	}

	// Tiny numbers are often ordinals or quantities rather than money.
	confidence = 0.95
	if v < 10 {
		confidence = 0.85
	}

	return v, confidence, true
}

// countAmounts returns how many numeric or currency tokens appear in text.
// Used to decide whether a comma-separated message holds multiple
// transactions.
func countAmounts(text string) int {
	return len(amountPattern.FindAllString(text, -1)) +
		len(currencyPattern.FindAllString(text, -1))
}
