package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skillup/backend/internal/auth/service"
	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

// SessionRepository is the interface that wraps methods for server-side session storage
type SessionRepository interface {
	// Method Create stores a new session.
	Create(ctx context.Context, session *models.Session) error
	// Method GetByID retrieves a session by ID, regardless of its expiry.
	//
	// If the session does not exist, models.ErrSessionNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	// Method Touch moves the expiry of a session to expiresAt.
	//
	// A store that can tell the session is gone returns models.ErrSessionNotFound instead of recreating it.
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error
	// Method Delete removes a session. Removing an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
	// Method DeleteExpired removes every session whose expiry is not after now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// sessionService issues, resolves and destroys server-side sessions
type sessionService struct {
	repo   SessionRepository
	signer *service.SessionSigner
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService creates a new session service with a sliding ttl
func NewSessionService(repo SessionRepository, signer *service.SessionSigner, ttl time.Duration, logger *zap.Logger) *sessionService {
	return &sessionService{
		repo:   repo,
		signer: signer,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Issue creates a session for user and returns the signed cookie value
func (s *sessionService) Issue(ctx context.Context, user *models.User) (string, *models.Session, error) {
	sessionID, err := service.NewSessionID()
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		UserEmail: user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	cookieValue, err := s.signer.Sign(sessionID)
	if err != nil {
		return "", nil, err
	}

	return cookieValue, session, nil
}

// Resolve returns the live session behind a cookie value and slides its expiry
func (s *sessionService) Resolve(ctx context.Context, cookieValue string) (*models.Session, error) {
	sessionID, err := s.signer.Verify(cookieValue)
	if err != nil {
		return nil, models.ErrSessionNotFound
	}

	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			s.logger.Error("failed to load session", zap.Error(err))
		}
		return nil, models.ErrSessionNotFound
	}

	now := s.now()
	if session.Expired(now) {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, models.ErrSessionNotFound
	}

	expiresAt := now.Add(s.ttl)
	if err := s.repo.Touch(ctx, sessionID, expiresAt); errors.Is(err, models.ErrSessionNotFound) {
		// destroyed by a concurrent logout
		return nil, models.ErrSessionNotFound
	} else if err != nil {
		s.logger.Warn("failed to extend session", zap.Error(err))
	} else {
		session.ExpiresAt = expiresAt
	}

	return session, nil
}

// Destroy deletes the session behind a cookie value. Unverifiable cookies have nothing to destroy.
func (s *sessionService) Destroy(ctx context.Context, cookieValue string) error {
	sessionID, err := s.signer.Verify(cookieValue)
	if err != nil {
		return nil
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// CleanExpired deletes sessions that are already expired
func (s *sessionService) CleanExpired(ctx context.Context) (int, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
