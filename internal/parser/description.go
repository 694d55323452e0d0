package parser

import (
	"regexp"
	"strings"
)

const (
	maxDescriptionLen = 100

	// defaultDescription is the placeholder when stripping leaves nothing.
	defaultDescription = "Transaction"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	leadingConnector = regexp.MustCompile(`(?i)^(for|on|at|in)\s+`)
)

// wordStripPattern compiles a case-insensitive word-boundary pattern for one
// keyword. RE2 \b is ASCII-only, so boundaries are expressed as
// non-letter/non-digit characters to keep Cyrillic keywords working.
func wordStripPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\pL\pN])` + regexp.QuoteMeta(keyword) + `([^\pL\pN]|$)`)
}

// buildStrippers precompiles removal patterns for every category keyword
// longer than 3 characters plus all expense-direction indicators.
func buildStrippers(keywords []CategoryKeywords) []*regexp.Regexp {
	var strippers []*regexp.Regexp

	for _, ck := range keywords {
		for _, kw := range append(append([]string{}, ck.Primary...), ck.Secondary...) {
			if len([]rune(kw)) <= 3 {
				continue
			}
			strippers = append(strippers, wordStripPattern(kw))
		}
	}

	for _, ind := range append(append([]string{}, strongExpenseIndicators...), weakExpenseIndicators...) {
		strippers = append(strippers, wordStripPattern(ind))
	}

	return strippers
}

// extractDescription derives the residual human-readable description by
// stripping the matched amount and known keywords from the original text.
// Stripping is best-effort: the result never contains the matched amount
// substring or category keyword tokens, but unusual layouts may leave noise.
func (p *Parser) extractDescription(text string, hasAmount bool) string {
	if hasAmount {
		text = amountPattern.ReplaceAllString(text, " ")
		text = currencyPattern.ReplaceAllString(text, " ")
	}

	for _, re := range p.strippers {
		text = re.ReplaceAllString(text, "$1$2")
	}

	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	text = leadingConnector.ReplaceAllString(text, "")
	text = strings.Trim(text, "!,.:;- ")

	if runes := []rune(text); len(runes) > maxDescriptionLen {
		text = string(runes[:maxDescriptionLen-3]) + "..."
	}

	if text == "" {
		return defaultDescription
	}
	return text
}
