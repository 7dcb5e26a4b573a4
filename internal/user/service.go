package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
)

// Store is the slice of the repository the service needs
type Store interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Credentials abstracts password hashing and the registration policies,
// so updates go through the same rules as registration
type Credentials interface {
	Hash(password string) (string, error)
	ValidatePassword(password string) error
	ValidatePhone(phone string) error
}

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrNameTooLong  = errors.New("name must be at most 150 characters")
)

const maxNameLen = 150

// ValidationError marks an error as recoverable malformed input
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Service handles user account management
type Service struct {
	store Store
	creds Credentials
}

func NewService(store Store, creds Credentials) *Service {
	return &Service{store: store, creds: creds}
}

// List returns all users
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

// Get returns a user by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateInput carries the fields of a partial update; nil means unchanged
type UpdateInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// Update applies a partial update. A new password is re-validated against
// the registration policy and stored hashed; plaintext never reaches the
// repository.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error) {
	params := UpdateParams{}

	if input.Name != nil {
		if len(*input.Name) > maxNameLen {
			return nil, &ValidationError{Err: ErrNameTooLong}
		}
		params.Name = input.Name
	}

	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return nil, &ValidationError{Err: ErrInvalidEmail}
		}
		params.Email = input.Email
	}

	if input.Phone != nil {
		if err := s.creds.ValidatePhone(*input.Phone); err != nil {
			return nil, &ValidationError{Err: err}
		}
		params.Phone = input.Phone
	}

	if input.Password != nil {
		if err := s.creds.ValidatePassword(*input.Password); err != nil {
			return nil, &ValidationError{Err: err}
		}
		hash, err := s.creds.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		params.PasswordHash = &hash
	}

	return s.store.Update(ctx, id, params)
}

// Delete removes a user by ID
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
