package submissions

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubmissionNotFound = errors.New("submission not found")

const (
	StatusPending             = "pending"
	StatusAccepted            = "accepted"
	StatusWrongAnswer         = "wrong_answer"
	StatusTimeLimitExceeded   = "time_limit_exceeded"
	StatusMemoryLimitExceeded = "memory_limit_exceeded"
)

type Repository struct {
	db *pgxpool.Pool
}

type Submission struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	QuestionID    int64     `json:"question_id"`
	QuestionTitle string    `json:"question_title,omitempty"`
	Code          string    `json:"code"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	Runtime       *int      `json:"runtime,omitempty"`
	Memory        *int      `json:"memory,omitempty"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateRequest struct {
	QuestionID int64  `json:"question_id" binding:"required,gt=0"`
	Code       string `json:"code" binding:"required,max=65536"`
	Language   string `json:"language" binding:"required,max=20"`
}

type ListFilter struct {
	QuestionID int64  `form:"question_id"`
	Status     string `form:"status"`
}
