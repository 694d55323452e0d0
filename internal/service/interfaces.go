// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/chatfin/finbot/internal/model"
)

// CategoryStore provides read access to a user's categories.
type CategoryStore interface {
	GetCategories(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, userID int64, name string, categoryType model.CategoryType) (*model.Category, error)
	GetCategoryByID(ctx context.Context, userID int64, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType) (*model.Category, error)
}

// Ledger commits and queries transactions. CreateTransaction failures wrap
// common.ErrPersistence.
type Ledger interface {
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetRecentTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)
	GetTransactionsByPeriod(ctx context.Context, userID int64, start, end time.Time) ([]model.Transaction, error)
}

// BudgetStatus is a point-in-time snapshot of spending against one
// category's budget.
type BudgetStatus struct {
	BudgetAmount float64
	Spent        float64
	Percentage   float64
	IsExceeded   bool
	IsWarning    bool
}

// BudgetStore manages per-category spending budgets. Status returns nil when
// no budget is configured for the category.
type BudgetStore interface {
	SetBudget(ctx context.Context, userID, categoryID int64, amount float64) error
	GetBudgets(ctx context.Context, userID int64) (map[int64]float64, error)
	Status(ctx context.Context, userID, categoryID int64) (*BudgetStatus, error)
}

// SessionStore holds per-user dialog state. Implementations may expire
// sessions after a TTL; an expired session is equivalent to a cancel.
type SessionStore interface {
	Get(userID int64) (*model.DialogSession, bool)
	Put(userID int64, session *model.DialogSession)
	Delete(userID int64)
}
