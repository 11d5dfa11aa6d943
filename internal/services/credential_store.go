package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillup/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter must already carry the password hash; its ID is filled in on success.
	//
	// If the email is already registered, models.ErrEmailTaken will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by exact email match.
	//
	// If user with such email does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

const bcryptMaxInput = 72

// credentialStore owns user records and the only path that turns a raw password into a stored hash
type credentialStore struct {
	repo       UserRepository
	bcryptCost int
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(repo UserRepository, bcryptCost int) *credentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &credentialStore{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

// FindByEmail returns the user registered under email or models.ErrUserNotFound
func (s *credentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// FindByID returns the user with the given ID or models.ErrUserNotFound
func (s *credentialStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create hashes rawPassword and persists a new user
func (s *credentialStore) Create(ctx context.Context, name, email, phone, rawPassword string) (*models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword(bcryptInput(rawPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(passwordHash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// VerifyPassword reports whether candidate matches the stored hash of user
func (s *credentialStore) VerifyPassword(user *models.User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(candidate)) == nil
}

// bcryptInput cuts a password to the 72 bytes bcrypt actually uses.
// Passwords of up to 100 characters are accepted at signup, and x/crypto rejects longer input instead of truncating it.
func bcryptInput(password string) []byte {
	if len(password) > bcryptMaxInput {
		return []byte(password[:bcryptMaxInput])
	}
	return []byte(password)
}
