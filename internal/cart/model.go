package cart

import (
	"github.com/google/uuid"

	"github.com/bigbazar/bb-api/internal/product"
)

// Cart is a user's shopping cart: a set of product references plus a
// total recomputed from current product prices on every read.
type Cart struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"user_id"`
	Products   []*product.Product `json:"products"`
	TotalPrice float64            `json:"total_price"`
}
