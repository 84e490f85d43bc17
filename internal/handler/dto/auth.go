// Package dto defines request and response shapes for the HTTP API.
package dto

import "github.com/qrkeep/qrkeep/internal/model"

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login. The token also rides
// in an http-only cookie; the body copy serves non-browser clients that
// authenticate with a bearer header.
type AuthResponse struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// UserResponse wraps the public user projection.
type UserResponse struct {
	User model.PublicUser `json:"user"`
}

// ErrorResponse is the error body shape for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// OKResponse is the minimal success acknowledgement.
type OKResponse struct {
	OK bool `json:"ok"`
}
