package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"spendwise/internal/blob"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/uuid"
)

// userService stores credential records in the users blob key.
type userService struct {
	store blob.Store
}

// NewUserService creates a new UserServicer.
func NewUserService(store blob.Store) UserServicer {
	return &userService{store: store}
}

func (s *userService) loadAll() ([]models.User, error) {
	raw, err := s.store.Get(blob.UsersKey)
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			return []models.User{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

func (s *userService) saveAll(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Set(blob.UsersKey, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Register creates a new user with a bcrypt-hashed password.
func (s *userService) Register(email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	email = strings.ToLower(email)

	users, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.saveAll(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id.
func (s *userService) GetByID(id string) (*models.User, error) {
	users, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// AttemptLogin verifies the credentials and returns the matching user.
// An unknown email and a wrong password are indistinguishable to the
// caller.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	users, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) != nil {
			return nil, apperrors.ErrInvalidCredentials
		}
		u := users[i]
		return &u, nil
	}
	return nil, apperrors.ErrInvalidCredentials
}
