// Package parser implements the rule-based natural-language transaction
// parser: it turns short free-text utterances like "50k taxi" or
// "received 5k salary" into structured amount/type/category/description
// fields with a calibrated confidence score.
package parser

import (
	"regexp"
	"strings"

	"github.com/chatfin/finbot/internal/model"
)

// typeAmbiguityDiscount is applied to the fused confidence when the
// direction classifier itself is unsure.
const typeAmbiguityDiscount = 0.9

// needsClarificationThreshold flags results the dialog layer should confirm
// with the user.
const needsClarificationThreshold = 0.5

// Parser is a pure, stateless transaction parser. All pattern matchers are
// compiled at construction and shared read-only, so a single Parser is safe
// for concurrent use across conversation sessions.
type Parser struct {
	keywords  []CategoryKeywords
	strippers []*regexp.Regexp
}

// New creates a parser with the built-in keyword table.
func New() *Parser {
	return NewWithKeywords(nil)
}

// NewWithKeywords creates a parser whose keyword table is the built-in set
// extended with extra categories (e.g. from a keyword pack file).
func NewWithKeywords(extra []CategoryKeywords) *Parser {
	keywords := make([]CategoryKeywords, 0, len(builtinKeywords)+len(extra))
	keywords = append(keywords, builtinKeywords...)
	keywords = append(keywords, extra...)

	return &Parser{
		keywords:  keywords,
		strippers: buildStrippers(keywords),
	}
}

// Parse classifies one message into one or more transactions. A message
// containing a comma and at least two numeric tokens is split into
// comma-separated segments parsed independently; everything else runs the
// single-segment pipeline. Parse never fails: malformed input comes back as
// a low-confidence result.
func (p *Parser) Parse(text string, userCategories []model.Category) model.ParsedMessage {
	text = strings.TrimSpace(text)

	if strings.Contains(text, ",") && countAmounts(text) >= 2 {
		if parsed, ok := p.parseMultiple(text, userCategories); ok {
			return parsed
		}
		// Malformed multi-input: fall back to parsing the whole text.
	}

	single := p.parseSingle(text, userCategories)
	return model.ParsedMessage{
		Segments:   []model.ParseResult{single},
		Confidence: single.Confidence,
	}
}

// parseMultiple splits on commas and parses each non-empty segment. Segments
// that yield no amount are dropped; when none survive, ok is false and the
// caller falls back to single-segment parsing.
func (p *Parser) parseMultiple(text string, userCategories []model.Category) (model.ParsedMessage, bool) {
	var segments []model.ParseResult

	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		result := p.parseSingle(part, userCategories)
		if result.HasAmount() {
			segments = append(segments, result)
		}
	}

	if len(segments) == 0 {
		return model.ParsedMessage{}, false
	}

	var sum float64
	for _, s := range segments {
		sum += s.Confidence
	}

	return model.ParsedMessage{
		Segments:   segments,
		Confidence: sum / float64(len(segments)),
		IsMultiple: true,
	}, true
}

// parseSingle runs the single-segment pipeline. Direction is classified
// first: category resolution downstream depends on the income/expense split.
func (p *Parser) parseSingle(text string, userCategories []model.Category) model.ParseResult {
	lower := strings.ToLower(text)

	txType, typeConfidence := classifyDirection(lower)
	amount, amountConfidence, hasAmount := extractAmount(lower)
	category := p.matchCategory(lower, userCategories)
	description := p.extractDescription(text, hasAmount)

	confidence := fuseConfidence(
		hasAmount, amountConfidence,
		category.Name != "", category.Confidence,
		len(category.Keywords), lower,
	)

	if typeConfidence < 0.7 {
		confidence *= typeAmbiguityDiscount
	}

	result := model.ParseResult{
		Category:           category.Name,
		Description:        description,
		MatchedKeywords:    category.Keywords,
		Type:               txType,
		AmountConfidence:   amountConfidence,
		CategoryConfidence: category.Confidence,
		TypeConfidence:     typeConfidence,
		Confidence:         confidence,
		NeedsClarification: confidence < needsClarificationThreshold,
	}
	if hasAmount {
		result.Amount = &amount
	}

	return result
}
