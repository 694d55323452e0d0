// Package flow implements the confidence-driven disambiguation dialog: given
// a parse result it decides between committing a transaction immediately,
// asking the user to confirm a category, or rejecting the message as noise,
// and it manages the per-session queue of transactions awaiting a category.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chatfin/finbot/internal/common"
	"github.com/chatfin/finbot/internal/model"
	"github.com/chatfin/finbot/internal/parser"
	"github.com/chatfin/finbot/internal/service"
)

const (
	// minConfidenceThreshold rejects input as unintelligible below it.
	minConfidenceThreshold = 0.4
	// autoCreateThreshold permits unattended commit when a category is
	// resolved.
	autoCreateThreshold = 0.75
)

// OutcomeKind identifies what the flow decided for a message.
type OutcomeKind string

// Flow decision kinds.
const (
	// OutcomeIgnored means the message was pre-filtered as non-transaction
	// chatter and silently dropped.
	OutcomeIgnored OutcomeKind = "IGNORED"
	// OutcomeRejected means parsing produced too little confidence; the
	// presentation layer should show format guidance.
	OutcomeRejected OutcomeKind = "REJECTED"
	// OutcomeAutoCreated means one or more transactions were committed
	// without asking the user.
	OutcomeAutoCreated OutcomeKind = "AUTO_CREATED"
	// OutcomePromptCategory means a pending transaction awaits an explicit
	// category choice.
	OutcomePromptCategory OutcomeKind = "PROMPT_CATEGORY"
	// OutcomeNoCategories means the user has no categories of the needed
	// type, so the dialog cannot continue.
	OutcomeNoCategories OutcomeKind = "NO_CATEGORIES"
	// OutcomeCancelled means the pending queue was discarded.
	OutcomeCancelled OutcomeKind = "CANCELLED"
)

// CommittedLine describes one transaction the flow committed, with the
// budget snapshot taken right after the commit (expense transactions only).
type CommittedLine struct {
	Budget       *service.BudgetStatus
	CategoryName string
	Description  string
	Type         model.TransactionType
	Amount       float64
	Confidence   float64
}

// Outcome is the flow's decision for one user action, to be rendered by the
// presentation layer.
type Outcome struct {
	Pending   *model.PendingTransaction
	Kind      OutcomeKind
	Committed []CommittedLine
	Choices   []model.Category
	// Total is the running total of committed expense amounts; income is
	// excluded from the displayed total.
	Total float64
	// Remaining counts queued transactions beyond the one being presented.
	Remaining int
	// Failed counts multi-transaction segments whose commit failed.
	Failed int
}

// Flow drives the clarification dialog. State is scoped per conversation
// session via the session store; the transport layer guarantees at most one
// in-flight handler per session, so the flow itself does no locking.
type Flow struct {
	parser     *parser.Parser
	categories service.CategoryStore
	ledger     service.Ledger
	budgets    service.BudgetStore
	sessions   service.SessionStore
}

// New creates a disambiguation flow with its collaborators.
func New(p *parser.Parser, categories service.CategoryStore, ledger service.Ledger, budgets service.BudgetStore, sessions service.SessionStore) *Flow {
	return &Flow{
		parser:     p,
		categories: categories,
		ledger:     ledger,
		budgets:    budgets,
		sessions:   sessions,
	}
}

// HandleMessage processes one free-text message for a session in the IDLE
// state.
func (f *Flow) HandleMessage(ctx context.Context, userID int64, text string) (Outcome, error) {
	if parser.ShouldIgnore(text) {
		slog.Info("ignoring non-transaction input", "user_id", userID)
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	userCategories, err := f.categories.GetCategories(ctx, userID, model.CategoryTypeAny)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load categories: %w", err)
	}

	parsed := f.parser.Parse(text, userCategories)

	slog.Info("parsed message",
		"user_id", userID,
		"confidence", parsed.Confidence,
		"is_multiple", parsed.IsMultiple)

	if parsed.IsMultiple {
		return f.handleMultiple(ctx, userID, parsed)
	}

	result := parsed.Single()
	if result.Confidence < minConfidenceThreshold {
		return Outcome{Kind: OutcomeRejected}, nil
	}

	if result.Type == model.TypeIncome {
		return f.handleIncome(ctx, userID, result)
	}
	return f.handleExpense(ctx, userID, result)
}

// handleExpense commits a confident expense or asks for its category.
func (f *Flow) handleExpense(ctx context.Context, userID int64, result model.ParseResult) (Outcome, error) {
	category, err := f.resolveCategory(ctx, userID, result.Category, model.CategoryTypeExpense)
	if err != nil {
		return Outcome{}, err
	}

	if category != nil && result.Confidence >= autoCreateThreshold {
		line, err := f.commit(ctx, userID, pendingFromResult(result), category)
		if err != nil {
			return Outcome{}, common.NewUserError("Failed to save expense. Please try again.", err)
		}
		return Outcome{Kind: OutcomeAutoCreated, Committed: []CommittedLine{line}, Total: line.Amount}, nil
	}

	return f.promptCategory(ctx, userID, pendingFromResult(result), nil)
}

// handleIncome commits a confident income transaction. When the category is
// unresolved but the user has exactly one income category, that category is
// used as the suggestion.
func (f *Flow) handleIncome(ctx context.Context, userID int64, result model.ParseResult) (Outcome, error) {
	incomeCategories, err := f.categories.GetCategories(ctx, userID, model.CategoryTypeIncome)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load income categories: %w", err)
	}
	if len(incomeCategories) == 0 {
		return Outcome{Kind: OutcomeNoCategories}, nil
	}

	category, err := f.resolveCategory(ctx, userID, result.Category, model.CategoryTypeIncome)
	if err != nil {
		return Outcome{}, err
	}
	if category == nil && len(incomeCategories) == 1 {
		category = &incomeCategories[0]
	}

	if category != nil && result.Confidence >= autoCreateThreshold {
		line, err := f.commit(ctx, userID, pendingFromResult(result), category)
		if err != nil {
			return Outcome{}, common.NewUserError("Failed to save income. Please try again.", err)
		}
		return Outcome{Kind: OutcomeAutoCreated, Committed: []CommittedLine{line}}, nil
	}

	return f.promptCategory(ctx, userID, pendingFromResult(result), nil)
}

// handleMultiple partitions segments into auto-commit and needs-category,
// commits the confident ones in original order, then queues the rest.
// Commit failures are isolated per segment so one failure does not abort the
// batch.
func (f *Flow) handleMultiple(ctx context.Context, userID int64, parsed model.ParsedMessage) (Outcome, error) {
	var outcome Outcome
	var needCategory []model.PendingTransaction

	for _, segment := range parsed.Segments {
		pending := pendingFromResult(segment)

		category, err := f.resolveCategory(ctx, userID, segment.Category, segment.Type.CategoryType())
		if err != nil {
			return Outcome{}, err
		}

		if category == nil || segment.Confidence < autoCreateThreshold {
			needCategory = append(needCategory, pending)
			continue
		}

		line, err := f.commit(ctx, userID, pending, category)
		if err != nil {
			common.LogError(err, "failed to commit segment", common.Fields{"user_id": userID})
			outcome.Failed++
			continue
		}

		outcome.Committed = append(outcome.Committed, line)
		if line.Type != model.TypeIncome {
			outcome.Total += line.Amount
		}
	}

	if len(needCategory) == 0 {
		outcome.Kind = OutcomeAutoCreated
		return outcome, nil
	}

	prompt, err := f.promptCategory(ctx, userID, needCategory[0], needCategory[1:])
	if err != nil {
		return Outcome{}, err
	}

	prompt.Committed = outcome.Committed
	prompt.Total = outcome.Total
	prompt.Failed = outcome.Failed
	return prompt, nil
}

// SelectCategory resumes an AWAITING_CATEGORY session with the user's
// explicit choice, commits the pending transaction, and re-prompts for the
// next queued entry if any.
func (f *Flow) SelectCategory(ctx context.Context, userID, categoryID int64) (Outcome, error) {
	session, ok := f.sessions.Get(userID)
	if !ok || session.State != model.StateAwaitingCategory || len(session.Queue) == 0 {
		return Outcome{}, common.NewUserError("Session expired. Please try again.", common.ErrSessionExpired)
	}

	category, err := f.categories.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		// A stale or foreign category id would wedge the queue; clear the
		// session instead.
		f.sessions.Delete(userID)
		return Outcome{}, common.NewUserError("Category not found.", common.ErrCategoryNotFound)
	}

	pending := session.Queue[0]
	if pending.Amount <= 0 {
		f.sessions.Delete(userID)
		return Outcome{}, common.NewUserError("Session expired. Please try again.", common.ErrSessionExpired)
	}

	line, err := f.commit(ctx, userID, pending, category)
	if err != nil {
		f.sessions.Delete(userID)
		return Outcome{}, common.NewUserError("Failed to save. Please try again.", err)
	}

	session.Queue = session.Queue[1:]
	if len(session.Queue) == 0 {
		f.sessions.Delete(userID)
		return Outcome{Kind: OutcomeAutoCreated, Committed: []CommittedLine{line}}, nil
	}

	f.sessions.Put(userID, session)
	prompt, err := f.promptCategory(ctx, userID, session.Queue[0], session.Queue[1:])
	if err != nil {
		return Outcome{}, err
	}
	prompt.Committed = []CommittedLine{line}
	return prompt, nil
}

// Cancel discards the pending transaction and any remaining queued entries,
// returning the session to IDLE.
func (f *Flow) Cancel(_ context.Context, userID int64) (Outcome, error) {
	f.sessions.Delete(userID)
	return Outcome{Kind: OutcomeCancelled}, nil
}

// State reports the session's current dialog state.
func (f *Flow) State(userID int64) model.DialogState {
	if session, ok := f.sessions.Get(userID); ok {
		return session.State
	}
	return model.StateIdle
}

// promptCategory enqueues pending transactions, moves the session to
// AWAITING_CATEGORY, and returns the category choices for the first entry.
func (f *Flow) promptCategory(ctx context.Context, userID int64, pending model.PendingTransaction, rest []model.PendingTransaction) (Outcome, error) {
	choices, err := f.categories.GetCategories(ctx, userID, pending.Type.CategoryType())
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(choices) == 0 {
		f.sessions.Delete(userID)
		return Outcome{Kind: OutcomeNoCategories}, nil
	}

	queue := append([]model.PendingTransaction{pending}, rest...)
	f.sessions.Put(userID, &model.DialogSession{
		State: model.StateAwaitingCategory,
		Queue: queue,
	})

	return Outcome{
		Kind:      OutcomePromptCategory,
		Pending:   &pending,
		Choices:   choices,
		Remaining: len(rest),
	}, nil
}

// resolveCategory looks up a matched category name in the user's category
// store. An empty name resolves to nil without an error.
func (f *Flow) resolveCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType) (*model.Category, error) {
	if name == "" {
		return nil, nil
	}

	category, err := f.categories.GetCategoryByName(ctx, userID, name, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	return category, nil
}

// commit writes the transaction through the ledger and, for expenses, takes
// a budget snapshot. The snapshot is a point-in-time read with no
// transactional coupling to the commit.
func (f *Flow) commit(ctx context.Context, userID int64, pending model.PendingTransaction, category *model.Category) (CommittedLine, error) {
	method := model.PaymentCash
	if pending.Type == model.TypeIncome {
		method = model.PaymentBank
	}

	txn := &model.Transaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Amount:        pending.Amount,
		CategoryID:    category.ID,
		Type:          pending.Type,
		Description:   pending.Description,
		PaymentMethod: method,
		Date:          time.Now().UTC(),
	}

	if err := f.ledger.CreateTransaction(ctx, txn); err != nil {
		return CommittedLine{}, err
	}

	line := CommittedLine{
		CategoryName: category.Name,
		Description:  pending.Description,
		Type:         pending.Type,
		Amount:       pending.Amount,
		Confidence:   pending.Confidence,
	}

	if pending.Type == model.TypeExpense {
		status, err := f.budgets.Status(ctx, userID, category.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			common.LogError(err, "failed to read budget status", common.Fields{"user_id": userID})
		} else {
			line.Budget = status
		}
	}

	return line, nil
}

// pendingFromResult converts a parse result into a pending transaction.
// Callers must ensure the result carries an amount.
func pendingFromResult(result model.ParseResult) model.PendingTransaction {
	var amount float64
	if result.Amount != nil {
		amount = *result.Amount
	}

	return model.PendingTransaction{
		Amount:            amount,
		Description:       result.Description,
		SuggestedCategory: result.Category,
		Type:              result.Type,
		Confidence:        result.Confidence,
	}
}
