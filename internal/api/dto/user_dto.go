package dto

import "github.com/spec-kit/identity-service/internal/domain"

// RegisterUserRequest payload for new accounts.
type RegisterUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ProfileID *int64 `json:"profile_id,omitempty"`
	StatusID  *int64 `json:"status_id,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for partial updates; absent fields keep their
// stored values.
type UpdateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ProfileID *int64 `json:"profile_id,omitempty"`
	StatusID  *int64 `json:"status_id,omitempty"`
}

// UserResponse is the outward shape of an account. The password, hashed or
// not, never serializes out.
type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	CreationDate string `json:"creation_date"`
	ProfileID    *int64 `json:"profile_id,omitempty"`
	StatusID     *int64 `json:"status_id,omitempty"`
}

// TokenResponse is the login response envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		CreationDate: user.CreationDate,
		ProfileID:    user.ProfileID,
		StatusID:     user.StatusID,
	}
}

// NewTokenResponse maps a domain token to its response shape.
func NewTokenResponse(token domain.Token) TokenResponse {
	return TokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType}
}
