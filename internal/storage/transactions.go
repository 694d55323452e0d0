package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chatfin/finbot/internal/common"
	"github.com/chatfin/finbot/internal/model"
)

// CreateTransaction commits a transaction to the ledger. Failures wrap
// common.ErrPersistence so callers can surface a user-facing notice.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount, category_id, type, description, payment_method, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.UserID, txn.Amount, txn.CategoryID, string(txn.Type),
		txn.Description, string(txn.PaymentMethod), txn.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to insert transaction: %v", common.ErrPersistence, err)
	}

	slog.Debug("created transaction",
		"id", txn.ID,
		"user_id", txn.UserID,
		"amount", txn.Amount,
		"type", txn.Type)
	return nil
}

// GetRecentTransactions returns the user's most recent transactions, newest
// first.
func (s *SQLiteStorage) GetRecentTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.amount, t.category_id, t.type, t.description, t.payment_method, t.date, c.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
		ORDER BY t.date DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsByPeriod returns the user's transactions in [start, end),
// oldest first.
func (s *SQLiteStorage) GetTransactionsByPeriod(ctx context.Context, userID int64, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.amount, t.category_id, t.type, t.description, t.payment_method, t.date, c.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.date >= ? AND t.date < ?
		ORDER BY t.date`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTransactions(rows rowScanner) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Amount, &txn.CategoryID, &txn.Type,
			&txn.Description, &txn.PaymentMethod, &txn.Date, &txn.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
