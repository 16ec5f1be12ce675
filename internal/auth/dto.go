package auth

import (
	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/users"
)

// RegisterRequest captures the storefront sign-up payload.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FullName  string  `json:"full_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	NIF       *string `json:"nif,omitempty"`
	Community *string `json:"community,omitempty"`
}

// RegisterResponse returns the created identity and its pending profile.
type RegisterResponse struct {
	User    *users.UserDTO        `json:"user"`
	Profile *customers.ProfileDTO `json:"profile"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and the signed-in user.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token together with its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
