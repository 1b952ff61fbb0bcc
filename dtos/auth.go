package dtos

import "pizza-harness/models"

// RegisterRequest is the body of POST /api/auth.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of PUT /api/auth. A missing password is a failed
// login, not a malformed request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// AuthResponse is returned by a successful registration or login.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}
