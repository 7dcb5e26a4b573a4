package cart

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/bigbazar/bb-api/internal/product"
)

var ErrNoProducts = errors.New("at least one product is required")

// Store is the slice of the repository the service needs
type Store interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	AddProducts(ctx context.Context, cartID uuid.UUID, productIDs []uuid.UUID) error
	RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
	ListProducts(ctx context.Context, cartID uuid.UUID) ([]*product.Product, error)
	TotalPrice(ctx context.Context, cartID uuid.UUID) (float64, error)
}

// Service handles cart business logic. Every operation is scoped to the
// owning user; the cart id never crosses the API boundary as an input.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the user's cart with its members and a freshly computed total
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	cartID, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx, cartID)
	if err != nil {
		return nil, err
	}

	total, err := s.store.TotalPrice(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return &Cart{
		ID:         cartID,
		UserID:     userID,
		Products:   products,
		TotalPrice: roundPrice(total),
	}, nil
}

// AddProducts adds one or more products to the user's cart.
// Adding an already-present product is a no-op.
func (s *Service) AddProducts(ctx context.Context, userID uuid.UUID, productIDs ...uuid.UUID) error {
	if len(productIDs) == 0 {
		return ErrNoProducts
	}

	cartID, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.store.AddProducts(ctx, cartID, productIDs)
}

// RemoveProduct removes a product from the user's cart.
// Removing an absent product is a no-op.
func (s *Service) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error {
	cartID, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.store.RemoveProduct(ctx, cartID, productID)
}

// Clear empties the user's cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	cartID, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.store.Clear(ctx, cartID)
}

// TotalPrice returns the sum of the current prices of the cart's members
func (s *Service) TotalPrice(ctx context.Context, userID uuid.UUID) (float64, error) {
	cartID, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}

	total, err := s.store.TotalPrice(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return roundPrice(total), nil
}

// roundPrice keeps aggregates at 2 fractional digits
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
