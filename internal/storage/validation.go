package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chatfin/finbot/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidUserID      = errors.New("user id must be positive")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUserID ensures a user id is positive.
func validateUserID(userID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// validateTransaction validates a transaction before insert.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidAmount, txn.Amount)
	}
	if txn.Type != model.TypeExpense && txn.Type != model.TypeIncome {
		return fmt.Errorf("%w: %q", ErrInvalidType, txn.Type)
	}
	return validateUserID(txn.UserID)
}
