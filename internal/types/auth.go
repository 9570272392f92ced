package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// LoginRequest is the editor login payload.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse carries an editor session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}
