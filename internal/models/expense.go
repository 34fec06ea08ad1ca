package models

import "time"

// Expense represents a single ledger entry owned by one user.
// Amounts are dollars with two-decimal precision; Date is the ISO
// calendar date the expense occurred, independent of CreatedAt.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseCategories is the closed set of supported categories.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Personal Care",
	"Other",
}

// IsValidCategory reports whether name is one of the supported categories.
func IsValidCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// CreateExpenseInput holds the fields required to create an expense.
type CreateExpenseInput struct {
	Amount      float64
	Category    string
	Description string
	Date        string
}

// UpdateExpenseInput holds a partial set of expense fields. Nil fields
// are left untouched by an update.
type UpdateExpenseInput struct {
	Amount      *float64
	Category    *string
	Description *string
	Date        *string
}
