package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the storage model for the users table.
// Email and phone carry unique constraints; conflicts surface at insert time.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	Phone        string    `bun:"phone,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Product is the storage model for the products table
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	Price       float64   `bun:"price,notnull"`
	IsActive    bool      `bun:"is_active,notnull,default:false"`
	OwnerID     uuid.UUID `bun:"owner_id,notnull,type:uuid"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ShoppingCart is the storage model for the shoppingcarts table.
// Each user owns at most one cart.
type ShoppingCart struct {
	bun.BaseModel `bun:"table:shoppingcarts,alias:sc"`

	ID     uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID uuid.UUID `bun:"user_id,notnull,unique,type:uuid"`
}

// ShoppingCartProduct is the join table backing cart membership.
// The composite primary key makes membership a set: re-inserting an
// existing pair is rejected by the store and treated as a no-op.
type ShoppingCartProduct struct {
	bun.BaseModel `bun:"table:shoppingcart_products,alias:scp"`

	ShoppingCartID uuid.UUID `bun:"shoppingcart_id,pk,type:uuid"`
	ProductID      uuid.UUID `bun:"product_id,pk,type:uuid"`
}
