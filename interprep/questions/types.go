package questions

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type Repository struct {
	db *pgxpool.Pool
}

type Question struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Difficulty   string          `json:"difficulty"`
	Topic        string          `json:"topic"`
	Company      string          `json:"company,omitempty"`
	CodeTemplate string          `json:"code_template,omitempty"`
	Hints        json.RawMessage `json:"hints"`
	Solution     string          `json:"solution,omitempty"`
	TestCases    json.RawMessage `json:"test_cases,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// question plus per-user flags
type Detail struct {
	Question
	IsFavorite bool `json:"is_favorite"`
}

type CreateRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	Content      string          `json:"content" binding:"required"`
	Difficulty   string          `json:"difficulty" binding:"required,oneof=easy medium hard Easy Medium Hard"`
	Topic        string          `json:"topic" binding:"required,max=50"`
	Company      string          `json:"company,omitempty" binding:"max=50"`
	CodeTemplate string          `json:"code_template,omitempty"`
	Solution     string          `json:"solution,omitempty"`
	TestCases    json.RawMessage `json:"test_cases,omitempty"`
	Hints        json.RawMessage `json:"hints,omitempty"`
}

type Favorite struct {
	ID       int64     `json:"favorite_id"`
	AddedAt  time.Time `json:"added_at"`
	Question Question  `json:"question"`
}

// one user's practice record for one question
type History struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	QuestionID    int64     `json:"question_id"`
	Title         string    `json:"title,omitempty"`
	Topic         string    `json:"topic,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Completed     bool      `json:"completed"`
	Attempts      int       `json:"attempts"`
	LastPracticed time.Time `json:"last_practiced"`
}
