package services

import "spendwise/internal/models"

// ExpenseServicer defines the contract for the expense store. Every
// operation is scoped by the owning user; a record owned by a different
// user is indistinguishable from an absent one.
type ExpenseServicer interface {
	ListByUser(userID string) ([]models.Expense, error)
	GetByID(id, userID string) (*models.Expense, error)
	Create(userID string, input models.CreateExpenseInput) (*models.Expense, error)
	Update(id, userID string, input models.UpdateExpenseInput) (*models.Expense, error)
	Delete(id, userID string) (bool, error)
	TotalForUser(userID string) (float64, error)
	ByCategory(userID string) (map[string][]models.Expense, error)
	ByDateRange(userID, start, end string) ([]models.Expense, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, password, name string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}
