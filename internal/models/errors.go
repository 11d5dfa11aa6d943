package models

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when signing up with an email that is already registered
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound is returned for absent, forged or expired sessions
	ErrSessionNotFound = errors.New("session not found")
	// ErrTopicNotFound is returned for slugs outside the known content set
	ErrTopicNotFound = errors.New("topic not found")
	// ErrContentUnavailable is returned when content could not be fetched or decoded
	ErrContentUnavailable = errors.New("content unavailable")
	// ErrInvalidInput is returned for malformed caller input outside schema validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrCompletionDisabled is returned when no completion API key is configured
	ErrCompletionDisabled = errors.New("completion API is not configured")
	// ErrUnparseableOutput is returned when no JSON could be recovered from model output
	ErrUnparseableOutput = errors.New("could not parse model output")
)
