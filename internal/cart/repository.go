package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/bigbazar/bb-api/internal/database"
	"github.com/bigbazar/bb-api/internal/product"
)

var ErrProductNotFound = errors.New("product not found")

// Repository persists cart membership through the join table
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the user's cart id, creating the cart on first use.
// The unique constraint on user_id keeps concurrent first requests from
// producing two carts.
func (r *Repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	dbCart := new(database.ShoppingCart)
	err := r.db.NewSelect().
		Model(dbCart).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err == nil {
		return dbCart.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("failed to get cart: %w", err)
	}

	dbCart = &database.ShoppingCart{UserID: userID}
	_, err = r.db.NewInsert().
		Model(dbCart).
		On("CONFLICT (user_id) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create cart: %w", err)
	}

	if dbCart.ID != uuid.Nil {
		return dbCart.ID, nil
	}

	// Lost the insert race; the winner's cart is there now
	err = r.db.NewSelect().
		Model(dbCart).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get cart after insert race: %w", err)
	}
	return dbCart.ID, nil
}

// AddProducts inserts the given products into the cart's membership set.
// Pairs already present are skipped by the conflict clause, which makes
// the operation idempotent per product.
func (r *Repository) AddProducts(ctx context.Context, cartID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	count, err := r.db.NewSelect().
		Model((*database.Product)(nil)).
		Where("id IN (?)", bun.In(productIDs)).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if count != len(uniqueIDs(productIDs)) {
		return ErrProductNotFound
	}

	rows := make([]*database.ShoppingCartProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		rows = append(rows, &database.ShoppingCartProduct{
			ShoppingCartID: cartID,
			ProductID:      pid,
		})
	}

	_, err = r.db.NewInsert().
		Model(&rows).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add products to cart: %w", err)
	}

	return nil
}

// RemoveProduct removes a product from the cart's membership set.
// Removing an absent product is a no-op.
func (r *Repository) RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*database.ShoppingCartProduct)(nil)).
		Where("shoppingcart_id = ?", cartID).
		Where("product_id = ?", productID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove product from cart: %w", err)
	}
	return nil
}

// Clear empties the cart's membership set. Products themselves are untouched.
func (r *Repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*database.ShoppingCartProduct)(nil)).
		Where("shoppingcart_id = ?", cartID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ListProducts returns the cart's current member products
func (r *Repository) ListProducts(ctx context.Context, cartID uuid.UUID) ([]*product.Product, error) {
	var dbProducts []*database.Product
	err := r.db.NewSelect().
		Model(&dbProducts).
		Join("JOIN shoppingcart_products AS scp ON scp.product_id = p.id").
		Where("scp.shoppingcart_id = ?", cartID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart products: %w", err)
	}

	products := make([]*product.Product, 0, len(dbProducts))
	for _, dbp := range dbProducts {
		products = append(products, &product.Product{
			ID:          dbp.ID,
			Name:        dbp.Name,
			Description: dbp.Description,
			Price:       dbp.Price,
			IsActive:    dbp.IsActive,
			OwnerID:     dbp.OwnerID,
			CreatedAt:   dbp.CreatedAt,
			UpdatedAt:   dbp.UpdatedAt,
		})
	}
	return products, nil
}

// TotalPrice sums the current prices of the cart's member products.
// It always reads live prices; nothing is cached.
func (r *Repository) TotalPrice(ctx context.Context, cartID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.NewSelect().
		ColumnExpr("COALESCE(SUM(p.price), 0)").
		TableExpr("products AS p").
		Join("JOIN shoppingcart_products AS scp ON scp.product_id = p.id").
		Where("scp.shoppingcart_id = ?", cartID).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cart total: %w", err)
	}
	return total, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
