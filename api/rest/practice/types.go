package practice

import (
	"context"

	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/questions"
)

// *practice.Service implements it
type Service interface {
	Session(ctx context.Context, userID int64, req practice.SessionRequest) ([]questions.Question, error)
	Progress(ctx context.Context, userID int64) (*practice.Progress, error)
	Record(ctx context.Context, userID int64, req practice.RecordRequest) (*questions.History, error)
	Evaluate(ctx context.Context, userID int64, req practice.EvaluateRequest) (*practice.EvaluationResult, error)
}

type SessionResponse struct {
	Questions []questions.Question `json:"questions"`
	Count     int                  `json:"count"`
}
