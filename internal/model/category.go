package model

import "time"

// CategoryType indicates whether a category applies to income or expense
// transactions.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeAny matches categories of any type in store queries.
	CategoryTypeAny CategoryType = ""
)

// Category represents a user-defined transaction category.
type Category struct {
	CreatedAt time.Time
	Name      string
	Type      CategoryType
	ID        int64
	UserID    int64
	IsActive  bool
}
