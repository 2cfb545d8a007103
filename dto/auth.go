package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" example:"johndoe"`
	Password string `json:"password" validate:"required,strong_password" example:"SecurePass123"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// FederatedSignInRequest is the hook the external identity provider calls
// after it has verified the provider token. First sign-in creates the
// account with the initial credit grant and no password hash.
type FederatedSignInRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google" example:"google"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Name     string `json:"name" validate:"required,min=1,max=60" example:"John Doe"`
}

func (f FederatedSignInRequest) Validate() error {
	return GetValidator().Struct(f)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterResponse struct {
	UserID  string `json:"user_id" example:"0198a2b4-7c9d-7e61-b3f0-2f4ab1c5d6e7"`
	Credits int    `json:"credits" example:"10"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64       `json:"expires_in" example:"86400"`
	User        AccountInfo `json:"user"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AccountInfo struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Plan        string     `json:"plan"`
	Credits     int        `json:"credits"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
