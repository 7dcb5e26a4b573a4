package auth

import (
	"context"
	"time"

	"github.com/bigbazar/bb-api/internal/user"
)

// TokenService defines the interface for token creation and validation
type TokenService interface {
	CreateToken(subject string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository is the slice of the user store the auth service needs
type UserRepository interface {
	Create(ctx context.Context, name, email, phone, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// AuthTokens is the pair of bearer credentials returned on login
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
