package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/bigbazar/bb-api/internal/logging"
	"github.com/bigbazar/bb-api/internal/user"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailRequired       = errors.New("email is required")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrPasswordNoUppercase = errors.New("password must contain at least 1 uppercase letter")
	ErrPasswordNoSpecial   = errors.New("password must include at least 1 special character ($ % & ! :)")
	ErrPasswordMismatch    = errors.New("password and confirmation password do not match")
	ErrInvalidPhone        = errors.New("phone must start with +7 and have 10 digits")
	ErrNameTooLong         = errors.New("name must be at most 150 characters")
)

const maxNameLen = 150

const passwordSpecialChars = "$%&!:"

var phonePattern = regexp.MustCompile(`^\+7\d{10}$`)

// Service handles registration and credential verification
type Service struct {
	userRepo             UserRepository
	tokenService         TokenService
	logger               *logging.Logger
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewService(
	userRepo UserRepository,
	tokenService TokenService,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		userRepo:             userRepo,
		tokenService:         tokenService,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// RegisterInput carries the registration fields.
// ConfirmPassword is validated once here, at the input boundary.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Register creates a new user account. Email and phone uniqueness is not
// pre-checked; the store's constraint violation surfaces as a duplicate
// sentinel from the repository.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	if len(input.Name) > maxNameLen {
		return nil, ErrNameTooLong
	}
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !phonePattern.MatchString(input.Phone) {
		return nil, ErrInvalidPhone
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.userRepo.Create(ctx, input.Name, input.Email, input.Phone, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) || errors.Is(err, user.ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login verifies credentials and mints an access and a refresh token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(password, existingUser.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(existingUser.Email)
}

// generateTokens mints the access and refresh token pair for a subject.
// Neither token is persisted; both are stateless bearer credentials.
func (s *Service) generateTokens(subject string) (*AuthTokens, error) {
	accessToken, err := s.tokenService.CreateToken(subject, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.tokenService.CreateToken(subject, s.refreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// ValidatePassword enforces the registration password policy:
// at least 8 characters, one uppercase letter, and one of $ % & ! :
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return ErrPasswordNoUppercase
	}

	if !strings.ContainsAny(password, passwordSpecialChars) {
		return ErrPasswordNoSpecial
	}

	return nil
}

// ValidatePhone enforces the +7XXXXXXXXXX phone mask
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}
