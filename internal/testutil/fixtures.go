package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"spendwise/internal/blob"
	"spendwise/internal/models"
	"spendwise/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// appendToCollection unmarshals the blob at key, appends record, and
// writes the collection back. Fixtures bypass the services so service
// tests don't depend on the code under test.
func appendToCollection[T any](t *testing.T, store blob.Store, key string, record T) {
	t.Helper()

	var collection []T
	raw, err := store.Get(key)
	if err != nil && !errors.Is(err, blob.ErrKeyNotFound) {
		t.Fatalf("failed to read %s blob: %v", key, err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &collection); err != nil {
			t.Fatalf("failed to decode %s blob: %v", key, err)
		}
	}

	collection = append(collection, record)
	out, err := json.Marshal(collection)
	if err != nil {
		t.Fatalf("failed to encode %s blob: %v", key, err)
	}
	if err := store.Set(key, out); err != nil {
		t.Fatalf("failed to write %s blob: %v", key, err)
	}
}

// CreateTestUser stores a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, store blob.Store) *models.User {
	t.Helper()
	return CreateTestUserWithEmail(t, store, fmt.Sprintf("user%d@test.com", nextID()))
}

// CreateTestUserWithEmail stores a user with the given email. The
// password is always "password123".
func CreateTestUserWithEmail(t *testing.T, store blob.Store, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         fmt.Sprintf("Test User %d", nextID()),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	appendToCollection(t, store, blob.UsersKey, user)
	return &user
}

// CreateTestExpense stores an expense with the given owner, category,
// amount, and date.
func CreateTestExpense(t *testing.T, store blob.Store, userID, category string, amount float64, date string) *models.Expense {
	t.Helper()

	now := time.Now().UTC()
	expense := models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	appendToCollection(t, store, blob.ExpensesKey, expense)
	return &expense
}
