package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

const redisSessionPrefix = "session:"

// redisSessionRepository implements SessionRepository on Redis keys with native TTL
type redisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository creates a new Redis-backed session repository
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *redisSessionRepository {
	return &redisSessionRepository{
		client: client,
		logger: logger,
	}
}

func redisSessionKey(sessionID string) string {
	return redisSessionPrefix + sessionID
}

// Create stores the session as JSON with a TTL matching its expiry
func (r *redisSessionRepository) Create(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, redisSessionKey(session.ID), payload, ttl).Err(); err != nil {
		r.logger.Error("failed to create session", zap.Error(err), zap.Int("userId", session.UserID))
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID loads a session; keys that Redis already expired are reported as not found
func (r *redisSessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	payload, err := r.client.Get(ctx, redisSessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		r.logger.Error("failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}

// Touch rewrites the stored expiry and resets the key TTL.
// The write uses SET XX, so a session deleted after the read stays deleted.
func (r *redisSessionRepository) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	session, err := r.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	session.ExpiresAt = expiresAt

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	updated, err := r.client.SetXX(ctx, redisSessionKey(sessionID), payload, time.Until(expiresAt)).Result()
	if err != nil {
		r.logger.Error("failed to touch session", zap.Error(err))
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if !updated {
		return models.ErrSessionNotFound
	}

	return nil
}

// Delete removes a session key
func (r *redisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisSessionKey(sessionID)).Err(); err != nil {
		r.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys on its own
func (r *redisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
