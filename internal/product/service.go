package product

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrNameRequired       = errors.New("product name is required")
	ErrNameTooLong        = errors.New("product name must be at most 150 characters")
	ErrDescriptionTooLong = errors.New("product description must be at most 350 characters")
	ErrInvalidPrice       = errors.New("price must be greater than zero with at most 2 decimal places")
)

const (
	maxNameLen        = 150
	maxDescriptionLen = 350

	defaultListLimit = 10
	maxListLimit     = 100
)

// Store is the slice of the repository the service needs
type Store interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, limit, offset int) ([]*Product, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) (*Product, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*Product, error)
}

// Service handles catalog business logic
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput carries the fields for product creation
type CreateInput struct {
	Name        string
	Description string
	Price       float64
}

// Create validates the input and creates a product owned by ownerID.
// New products are inactive until explicitly activated.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*Product, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Name) > maxNameLen {
		return nil, ErrNameTooLong
	}
	if len(input.Description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, CreateParams{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OwnerID:     ownerID,
	})
}

// Get returns a product by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateInput carries the fields of a partial update; nil means unchanged
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// Update applies a partial update after validating the provided fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Product, error) {
	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		if len(*input.Name) > maxNameLen {
			return nil, ErrNameTooLong
		}
	}
	if input.Description != nil && len(*input.Description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
	}

	return s.store.Update(ctx, id, UpdateParams{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
}

// Delete removes a product by ID
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// ListActive returns active products with limit/offset pagination.
// Inactive products never appear here.
func (s *Service) ListActive(ctx context.Context, limit, offset int) ([]*Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.store.ListActive(ctx, limit, offset)
}

// SetActive sets the product's active flag to an absolute value
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, isActive bool) (*Product, error) {
	return s.store.SetActive(ctx, id, isActive)
}

// ToggleActive flips the product's active flag
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.store.ToggleActive(ctx, id)
}

// validatePrice rejects non-positive prices and more than 2 fractional digits
func validatePrice(price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-9 {
		return ErrInvalidPrice
	}
	return nil
}
