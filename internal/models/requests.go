package models

import "strings"

// SignupRequest represents the signup form
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone,min=10,max=20"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GenerateAnswerRequest represents a request to answer a single interview question
type GenerateAnswerRequest struct {
	Question string `json:"question"`
	Role     string `json:"role"`
	Context  string `json:"context"`
}

// GenerateQuestionsRequest represents a request to generate question and answer pairs.
// Count is kept as a string so both JSON numbers and form values decode into it.
type GenerateQuestionsRequest struct {
	Role   string `json:"role"`
	Topics string `json:"topics"`
	Count  string `json:"count"`
}

// GenerateResourcesRequest represents a request for learning resources on a topic
type GenerateResourcesRequest struct {
	Topic string `json:"topic"`
	Role  string `json:"role"`
}

// Normalize trims surrounding whitespace from the text fields. The password is kept as typed.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Normalize trims surrounding whitespace from the email. The password is kept as typed.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}
