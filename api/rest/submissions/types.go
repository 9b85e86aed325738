package submissions

import (
	"context"

	"codeberg.org/interprep/server/api/rest/pagination"
	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/submissions"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Store interface {
	Get(ctx context.Context, submissionID, userID int64) (*submissions.Submission, error)
	List(ctx context.Context, userID int64, f submissions.ListFilter, limit, offset int) ([]submissions.Submission, int, error)
}

// grades and stores a new submission
type Evaluator interface {
	Evaluate(ctx context.Context, userID int64, req practice.EvaluateRequest) (*practice.EvaluationResult, error)
}

type ListQuery struct {
	submissions.ListFilter
	pagination.Page
}

type ListResponse struct {
	Submissions []submissions.Submission `json:"submissions"`
	Pagination  pagination.Meta          `json:"pagination"`
}
