package models

import "time"

// Session is the server-side state bound to a signed session cookie
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at the given moment
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
