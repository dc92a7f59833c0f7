package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/jwt"
	"finance-tracker/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*entities.User, error)
	Login(ctx context.Context, identifier, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	cost       int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cost:       bcrypt.DefaultCost,
	}
}

// Register creates a new user account. Only the bcrypt hash of password is stored.
func (s *authService) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError(`"password" length must be less than or equal to 72 bytes long`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// uniqueness is enforced by the store, which reports apperrors.ErrUserExists
	user, err := s.userRepo.Create(ctx, username, email, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user by username or email and returns a signed token
func (s *authService) Login(ctx context.Context, identifier, password string) (string, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
