package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

// CredentialStore is the interface that wraps user lookup, creation and password verification.
type CredentialStore interface {
	// Method FindByEmail retrieves a user by exact email match.
	//
	// If user with such email does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Method FindByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	FindByID(ctx context.Context, id int) (*models.User, error)
	// Method Create hashes the raw password and stores a new user.
	//
	// If the email is already registered, models.ErrEmailTaken will be returned together with "nil" value.
	Create(ctx context.Context, name, email, phone, rawPassword string) (*models.User, error)
	// Method VerifyPassword compares candidate against the stored password hash of user.
	VerifyPassword(user *models.User, candidate string) bool
}

// authService implements signup and login on top of a CredentialStore
type authService struct {
	store  CredentialStore
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store CredentialStore, logger *zap.Logger) *authService {
	return &authService{
		store:  store,
		logger: logger,
	}
}

// Signup registers a new user after checking the email is free
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	existing, err := s.store.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, models.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user, err := s.store.Create(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.Int("userId", user.ID))
	return user, nil
}

// Login authenticates a user. Unknown email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.store.VerifyPassword(user, req.Password) {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}
