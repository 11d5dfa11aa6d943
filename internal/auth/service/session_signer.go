package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionIDBytes is the amount of entropy in a session ID (256 bits)
const sessionIDBytes = 32

// SessionSigner signs session IDs into cookie values and verifies them back
type SessionSigner struct {
	secret string
}

// NewSessionSigner creates a new session signer
func NewSessionSigner(secret string) *SessionSigner {
	return &SessionSigner{secret: secret}
}

// NewSessionID generates a random opaque session identifier encoded as base64url
func NewSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Sign wraps a session ID into a signed cookie value.
// The token carries no expiry: the server-side record is the source of truth for it.
func (s *SessionSigner) Sign(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}

	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}

	return tokenString, nil
}

// Verify validates a cookie value and returns the session ID it carries
func (s *SessionSigner) Verify(cookieValue string) (string, error) {
	token, err := jwt.Parse(cookieValue, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse session cookie: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("session cookie is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session cookie claims")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("sid not found in session cookie")
	}

	return sessionID, nil
}
