// Package model defines the core domain models used throughout the application.
package model

// ParseResult holds the structured fields extracted from one free-text
// message segment. A result is built once per parse call and never mutated
// afterwards.
type ParseResult struct {
	Amount             *float64
	Category           string // Empty when no category was matched
	Description        string
	MatchedKeywords    []string
	Type               TransactionType
	AmountConfidence   float64
	CategoryConfidence float64
	TypeConfidence     float64
	Confidence         float64
	NeedsClarification bool
}

// HasAmount reports whether a monetary amount was extracted.
func (r *ParseResult) HasAmount() bool {
	return r.Amount != nil
}

// HasCategory reports whether a category was matched.
func (r *ParseResult) HasCategory() bool {
	return r.Category != ""
}

// ParsedMessage is the outcome of parsing one incoming message. Single
// messages carry exactly one segment; comma-separated multi-transaction
// messages carry one segment per amount-bearing part.
type ParsedMessage struct {
	Segments   []ParseResult
	Confidence float64
	IsMultiple bool
}

// Single returns the sole segment of a single-transaction message.
func (m *ParsedMessage) Single() ParseResult {
	return m.Segments[0]
}

// PendingTransaction is a parsed-but-uncommitted transaction held by a
// dialog session while the user picks a category. It is destroyed on
// selection, cancellation, or session expiry.
type PendingTransaction struct {
	Description       string
	SuggestedCategory string
	Type              TransactionType
	Amount            float64
	Confidence        float64
}

// DialogState identifies where a conversation session is in the
// clarification dialog.
type DialogState string

const (
	// StateIdle means no transaction is awaiting confirmation.
	StateIdle DialogState = "IDLE"
	// StateAwaitingCategory means one or more pending transactions are
	// queued and the first is being shown to the user.
	StateAwaitingCategory DialogState = "AWAITING_CATEGORY"
)

// DialogSession holds the per-user clarification dialog state. A session is
// owned by a single conversation and is only ever touched by that
// conversation's sequential message stream.
type DialogSession struct {
	State DialogState
	Queue []PendingTransaction
}
