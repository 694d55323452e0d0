package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/chatfin/finbot/internal/service"
)

// budgetWarningRatio is the fraction of a budget at which a warning is
// surfaced.
const budgetWarningRatio = 0.8

// SetBudget creates or replaces the spending budget for one category.
func (s *SQLiteStorage) SetBudget(ctx context.Context, userID, categoryID int64, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidAmount, amount)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category_id, amount)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, category_id) DO UPDATE SET amount = excluded.amount`,
		userID, categoryID, amount)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// GetBudgets returns the user's budgets keyed by category id.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID int64) (map[int64]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, amount FROM budgets WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[int64]float64)
	for rows.Next() {
		var categoryID int64
		var amount float64
		if err := rows.Scan(&categoryID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets[categoryID] = amount
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// Status reports spending against the category's budget. Returns nil when no
// budget is configured.
func (s *SQLiteStorage) Status(ctx context.Context, userID, categoryID int64) (*service.BudgetStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	var budgetAmount float64
	err := s.db.QueryRowContext(ctx, `
		SELECT amount FROM budgets WHERE user_id = ? AND category_id = ?`,
		userID, categoryID).Scan(&budgetAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No budget configured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	var spent float64
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND category_id = ? AND type = 'expense'`,
		userID, categoryID).Scan(&spent)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate spent amount: %w", err)
	}

	var percentage float64
	if budgetAmount > 0 {
		percentage = math.Round(spent/budgetAmount*1000) / 10
	}

	return &service.BudgetStatus{
		BudgetAmount: budgetAmount,
		Spent:        spent,
		Percentage:   percentage,
		IsExceeded:   spent > budgetAmount,
		IsWarning:    spent > budgetAmount*budgetWarningRatio && spent <= budgetAmount,
	}, nil
}
