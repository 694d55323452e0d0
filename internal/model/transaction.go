package model

import "time"

// TransactionType indicates the direction of a transaction.
type TransactionType string

const (
	// TypeExpense represents money leaving the user's pocket.
	TypeExpense TransactionType = "expense"
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
)

// CategoryType returns the category type matching this direction.
func (t TransactionType) CategoryType() CategoryType {
	if t == TypeIncome {
		return CategoryTypeIncome
	}
	return CategoryTypeExpense
}

// PaymentMethod describes how a transaction was paid.
type PaymentMethod string

const (
	// PaymentCash is the default method for expenses.
	PaymentCash PaymentMethod = "cash"
	// PaymentBank is the default method for income.
	PaymentBank PaymentMethod = "bank"
)

// Transaction represents a committed financial transaction.
type Transaction struct {
	Date          time.Time
	ID            string
	Description   string
	Type          TransactionType
	PaymentMethod PaymentMethod
	CategoryName  string // Populated on reads joined with categories
	Amount        float64
	UserID        int64
	CategoryID    int64
}
