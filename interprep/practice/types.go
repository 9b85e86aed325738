package practice

import (
	"context"
	"errors"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
)

var ErrEvaluationFailed = errors.New("solution evaluation failed")

const (
	DefaultSessionSize = 5
	recentLimit        = 5
)

type QuestionStore interface {
	List(ctx context.Context, f catalog.Filter, limit, offset int) ([]questions.Question, int, error)
	Get(ctx context.Context, questionID int64) (*questions.Question, error)
	History(ctx context.Context, userID int64) ([]questions.History, error)
	RecordPractice(ctx context.Context, userID, questionID int64, completed bool) (*questions.History, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s submissions.Submission) (*submissions.Submission, error)
	StatusCounts(ctx context.Context, userID int64) (map[string]int, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, req generator.EvaluationRequest) (*generator.Evaluation, error)
}

// Service runs practice sessions over the question bank.
type Service struct {
	questions   QuestionStore
	submissions SubmissionStore
	evaluator   Evaluator
}

type SessionRequest struct {
	catalog.Filter
	Limit int `form:"limit"`
}

type EvaluateRequest struct {
	QuestionID int64  `json:"question_id" binding:"required,gt=0"`
	Code       string `json:"code" binding:"required,max=65536"`
	Language   string `json:"language" binding:"required,max=20"`
}

type RecordRequest struct {
	QuestionID int64 `json:"question_id" binding:"required,gt=0"`
	Completed  bool  `json:"completed"`
}

type Activity struct {
	QuestionID    int64     `json:"question_id"`
	Title         string    `json:"title"`
	Completed     bool      `json:"completed"`
	LastPracticed time.Time `json:"last_practiced"`
	Attempts      int       `json:"attempts"`
}

type Progress struct {
	TotalPracticed        int            `json:"total_practiced"`
	TotalCompleted        int            `json:"total_completed"`
	CompletionRate        float64        `json:"completion_rate"`
	TotalSubmissions      int            `json:"total_submissions"`
	SuccessfulSubmissions int            `json:"successful_submissions"`
	SuccessRate           float64        `json:"success_rate"`
	Topics                map[string]int `json:"topics"`
	Difficulties          map[string]int `json:"difficulties"`
	RecentActivity        []Activity     `json:"recent_activity"`
}

type EvaluationResult struct {
	SubmissionID int64     `json:"submission_id"`
	Status       string    `json:"status"`
	Runtime      *int      `json:"runtime"`
	Memory       *int      `json:"memory"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}
