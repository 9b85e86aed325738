package users

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Provider     string     `json:"provider,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Profile      *Profile   `json:"profile,omitempty"`
}

// extended, user-editable information
type Profile struct {
	FullName    string          `json:"full_name"`
	Bio         string          `json:"bio"`
	Preferences json.RawMessage `json:"preferences"`
	Settings    json.RawMessage `json:"settings"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// nil fields are left unchanged
type UpdateProfileRequest struct {
	Email       *string         `json:"email,omitempty" binding:"omitempty,email,max=120"`
	Password    *string         `json:"password,omitempty" binding:"omitempty,min=8,max=128"`
	FullName    *string         `json:"full_name,omitempty" binding:"omitempty,max=120"`
	Bio         *string         `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

type SubmissionCounts struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Pending   int `json:"pending"`
}

type Stats struct {
	Submissions    SubmissionCounts `json:"submissions"`
	FavoritesCount int              `json:"favorites_count"`
	PracticeCount  int              `json:"practice_count"`
	CompletedCount int              `json:"completed_count"`
}
