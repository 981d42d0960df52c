package dto

import (
	"strings"
)

// -------- Core auth --------

type RegisterRequest struct {
	Email    string         `json:"email" validate:"required"`
	Password string         `json:"password" validate:"required"`
	Role     string         `json:"role" validate:"required,account_role"`
	Profile  map[string]any `json:"profile"`
}

// Validate trims surrounding whitespace from the email but leaves its
// case untouched; addresses are stored and compared exactly as given.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateRequest(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateRequest(r)
}

// Refresh carries no body fields. The refresh token travels in the
// Authorization header like any other bearer token.
type RefreshRequest struct{}

type LogoutRequest struct{}
