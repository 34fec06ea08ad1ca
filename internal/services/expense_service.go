package services

import (
	"encoding/json"
	"errors"
	"time"

	"spendwise/internal/blob"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/uuid"
)

// expenseService implements ExpenseServicer over the blob store. The
// whole collection is read, modified in memory, and written back on
// every mutation; the blob's all-or-nothing Set keeps the previous
// snapshot authoritative when a write fails.
type expenseService struct {
	store blob.Store
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(store blob.Store) ExpenseServicer {
	return &expenseService{store: store}
}

// loadAll reads and decodes the full expense collection. An absent key
// is an empty collection, not an error.
func (s *expenseService) loadAll() ([]models.Expense, error) {
	raw, err := s.store.Get(blob.ExpensesKey)
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			return []models.Expense{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// saveAll serializes and persists the full collection.
func (s *expenseService) saveAll(expenses []models.Expense) error {
	raw, err := json.Marshal(expenses)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Set(blob.ExpensesKey, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListByUser returns all expenses owned by userID. No ordering is part
// of the contract; consumers requiring order must sort.
func (s *expenseService) ListByUser(userID string) ([]models.Expense, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	expenses := []models.Expense{}
	for _, e := range all {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

// GetByID returns the expense matching both id and userID.
func (s *expenseService) GetByID(id, userID string) (*models.Expense, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID == id && all[i].UserID == userID {
			e := all[i]
			return &e, nil
		}
	}
	return nil, apperrors.ErrExpenseNotFound
}

// validateFields checks the creation rules shared with the HTTP
// boundary. The duplication is deliberate: the store stays safe even if
// a new caller skips boundary validation.
func validateFields(amount float64, category, description, date string) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than 0")
	}
	if !models.IsValidCategory(category) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is not supported")
	}
	if description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if !isValidDate(date) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be in YYYY-MM-DD format")
	}
	return nil
}

// isValidDate reports whether s is a calendar date in YYYY-MM-DD form.
// Fixed-width ISO dates let the store compare ranges lexicographically.
func isValidDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Create validates the input, assigns a fresh id and timestamps,
// appends the record, and persists the collection.
func (s *expenseService) Create(userID string, input models.CreateExpenseInput) (*models.Expense, error) {
	if err := validateFields(input.Amount, input.Category, input.Description, input.Date); err != nil {
		return nil, err
	}

	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	all = append(all, expense)
	if err := s.saveAll(all); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update merges the provided fields over the existing record and
// refreshes UpdatedAt. Nil fields are left untouched.
func (s *expenseService) Update(id, userID string, input models.UpdateExpenseInput) (*models.Expense, error) {
	if input.Amount != nil && *input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than 0")
	}
	if input.Category != nil && !models.IsValidCategory(*input.Category) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is not supported")
	}
	if input.Description != nil && *input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if input.Date != nil && !isValidDate(*input.Date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be in YYYY-MM-DD format")
	}

	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range all {
		if all[i].ID == id && all[i].UserID == userID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperrors.ErrExpenseNotFound
	}

	updated := all[index]
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Category != nil {
		updated.Category = *input.Category
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Date != nil {
		updated.Date = *input.Date
	}
	updated.UpdatedAt = time.Now().UTC()

	all[index] = updated
	if err := s.saveAll(all); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the expense matching both id and userID. It reports
// whether a record was actually removed; deleting an absent record is
// a no-op, never an error.
func (s *expenseService) Delete(id, userID string) (bool, error) {
	all, err := s.loadAll()
	if err != nil {
		return false, err
	}

	remaining := make([]models.Expense, 0, len(all))
	for _, e := range all {
		if e.ID == id && e.UserID == userID {
			continue
		}
		remaining = append(remaining, e)
	}

	if len(remaining) == len(all) {
		return false, nil
	}
	if err := s.saveAll(remaining); err != nil {
		return false, err
	}
	return true, nil
}

// TotalForUser sums the amounts of a user's expenses.
func (s *expenseService) TotalForUser(userID string) (float64, error) {
	expenses, err := s.ListByUser(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total, nil
}

// ByCategory partitions a user's expenses by category. Categories with
// no expenses do not appear in the result.
func (s *expenseService) ByCategory(userID string) (map[string][]models.Expense, error) {
	expenses, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Expense)
	for _, e := range expenses {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped, nil
}

// ByDateRange returns a user's expenses with start <= date <= end.
func (s *expenseService) ByDateRange(userID, start, end string) ([]models.Expense, error) {
	expenses, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	inRange := []models.Expense{}
	for _, e := range expenses {
		if e.Date >= start && e.Date <= end {
			inRange = append(inRange, e)
		}
	}
	return inRange, nil
}
