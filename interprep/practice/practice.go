package practice

import (
	"context"
	"fmt"

	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
)

const maxSessionSize = 50

func NewService(q QuestionStore, s SubmissionStore, e Evaluator) *Service {
	return &Service{questions: q, submissions: s, evaluator: e}
}

// picks up to req.Limit questions matching the filter, preferring ones the
// user has not completed yet
func (s *Service) Session(ctx context.Context, userID int64, req SessionRequest) ([]questions.Question, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSessionSize
	}

	limit = min(limit, maxSessionSize)

	history, err := s.questions.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice history: %w", err)
	}

	completed := completedSet(history)

	// enough candidates that limit uncompleted ones exist if the filter allows
	candidates, _, err := s.questions.List(ctx, req.Filter, limit+len(completed), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	session := SelectSession(candidates, completed, limit)
	for i := range session {
		session[i] = session[i].Public()
	}

	return session, nil
}

func (s *Service) Progress(ctx context.Context, userID int64) (*Progress, error) {
	history, err := s.questions.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice history: %w", err)
	}

	counts, err := s.submissions.StatusCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	p := ComputeProgress(history, counts)

	return &p, nil
}

func (s *Service) Record(ctx context.Context, userID int64, req RecordRequest) (*questions.History, error) {
	if _, err := s.questions.Get(ctx, req.QuestionID); err != nil {
		return nil, err
	}

	return s.questions.RecordPractice(ctx, userID, req.QuestionID, req.Completed)
}

// grades a solution, stores it as a submission and completes the question
// when accepted
func (s *Service) Evaluate(ctx context.Context, userID int64, req EvaluateRequest) (*EvaluationResult, error) {
	q, err := s.questions.Get(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	eval, err := s.evaluator.Evaluate(ctx, generator.EvaluationRequest{
		Question:  q.Content,
		Code:      req.Code,
		Language:  req.Language,
		Solution:  q.Solution,
		TestCases: string(q.TestCases),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}

	sub, err := s.submissions.Create(ctx, submissions.Submission{
		UserID:     userID,
		QuestionID: q.ID,
		Code:       req.Code,
		Language:   req.Language,
		Status:     eval.Status,
		Runtime:    eval.Runtime,
		Memory:     eval.Memory,
		Feedback:   eval.Feedback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if eval.Status == generator.StatusAccepted {
		if _, err := s.questions.RecordPractice(ctx, userID, q.ID, true); err != nil {
			return nil, fmt.Errorf("failed to record completion: %w", err)
		}
	}

	return &EvaluationResult{
		SubmissionID: sub.ID,
		Status:       sub.Status,
		Runtime:      sub.Runtime,
		Memory:       sub.Memory,
		Feedback:     sub.Feedback,
		CreatedAt:    sub.CreatedAt,
	}, nil
}
