package auth

import (
	"context"

	"codeberg.org/interprep/server/interprep/users"
)

// the subset of users.Repository the auth handlers need
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*users.User, error)
	FindByID(ctx context.Context, userID int64) (*users.User, error)
	FindByUsername(ctx context.Context, username string) (*users.User, error)
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name string) (*users.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, req users.UpdateProfileRequest, passwordHash *string) (*users.User, error)
}

// AuthResponse returned after register, login or OAuth callback
type AuthResponse struct {
	Message string      `json:"message,omitempty"`
	Token   string      `json:"access_token"`
	User    *users.User `json:"user"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
