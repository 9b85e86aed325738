package generator

import (
	"context"
	"fmt"
	"strings"
)

// grades a solution; runtime and memory stay nil since nothing is executed
func (g *Generator) Evaluate(ctx context.Context, req EvaluationRequest) (*Evaluation, error) {
	text, err := g.call(ctx, "evaluate", evaluationPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate solution: %w", err)
	}

	return &Evaluation{
		Status:   Classify(text),
		Feedback: text,
	}, nil
}

// derives a submission status from evaluation feedback. checks run in order;
// the first match wins.
func Classify(feedback string) string {
	lower := strings.ToLower(feedback)

	switch {
	case strings.Contains(lower, "incorrect"), strings.Contains(lower, "wrong"):
		return StatusWrongAnswer
	case strings.Contains(lower, "time limit"), strings.Contains(lower, "too slow"):
		return StatusTimeLimitExceeded
	case strings.Contains(lower, "memory limit"), strings.Contains(lower, "too much memory"):
		return StatusMemoryLimitExceeded
	default:
		return StatusAccepted
	}
}
