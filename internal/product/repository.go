package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/bigbazar/bb-api/internal/database"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrConflict = errors.New("product already exists")
)

// Repository handles product data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// CreateParams carries the fields of a new product
type CreateParams struct {
	Name        string
	Description string
	Price       float64
	OwnerID     uuid.UUID
}

// Create inserts a new product. Products start inactive; activation is a
// separate operation.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	dbProduct := &database.Product{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		IsActive:    false,
		OwnerID:     params.OwnerID,
	}

	_, err := r.db.NewInsert().
		Model(dbProduct).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return mapDBProductToModel(dbProduct), nil
}

// GetByID retrieves a product by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	dbProduct := new(database.Product)
	err := r.db.NewSelect().
		Model(dbProduct).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return mapDBProductToModel(dbProduct), nil
}

// UpdateParams carries the fields of a partial product update;
// nil fields are left untouched
type UpdateParams struct {
	Name        *string
	Description *string
	Price       *float64
}

// Update applies a partial update and returns the updated product
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	q := r.db.NewUpdate().
		Model((*database.Product)(nil)).
		Set("updated_at = NOW()").
		Where("id = ?", id)

	if params.Name != nil {
		q = q.Set("name = ?", *params.Name)
	}
	if params.Description != nil {
		q = q.Set("description = ?", *params.Description)
	}
	if params.Price != nil {
		q = q.Set("price = ?", *params.Price)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a product by ID. Cart memberships referencing the product
// are removed with it; carts themselves are untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*database.ShoppingCartProduct)(nil)).
		Where("product_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove product from carts: %w", err)
	}

	result, err := r.db.NewDelete().
		Model((*database.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListActive returns active products with limit/offset pagination
func (r *Repository) ListActive(ctx context.Context, limit, offset int) ([]*Product, error) {
	var dbProducts []*database.Product
	err := r.db.NewSelect().
		Model(&dbProducts).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	products := make([]*Product, 0, len(dbProducts))
	for _, dbp := range dbProducts {
		products = append(products, mapDBProductToModel(dbp))
	}
	return products, nil
}

// SetActive sets the product's active flag to the given value
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, isActive bool) (*Product, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Product)(nil)).
		Set("is_active = ?", isActive).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set product status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// ToggleActive flips the product's active flag
func (r *Repository) ToggleActive(ctx context.Context, id uuid.UUID) (*Product, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Product)(nil)).
		Set("is_active = NOT is_active").
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle product status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// mapDBProductToModel converts database model to domain model
func mapDBProductToModel(dbp *database.Product) *Product {
	return &Product{
		ID:          dbp.ID,
		Name:        dbp.Name,
		Description: dbp.Description,
		Price:       dbp.Price,
		IsActive:    dbp.IsActive,
		OwnerID:     dbp.OwnerID,
		CreatedAt:   dbp.CreatedAt,
		UpdatedAt:   dbp.UpdatedAt,
	}
}
