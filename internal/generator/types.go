package generator

import (
	"errors"

	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/metrics"
	"github.com/yuin/goldmark"
)

var ErrEmptyResponse = errors.New("model returned an empty response")

// evaluation outcomes, matching submission statuses
const (
	StatusAccepted            = "accepted"
	StatusWrongAnswer         = "wrong_answer"
	StatusTimeLimitExceeded   = "time_limit_exceeded"
	StatusMemoryLimitExceeded = "memory_limit_exceeded"
)

// Generator produces and grades interview questions with an LLM.
type Generator struct {
	llm      llm.TextGenerator
	metrics  *metrics.Metrics
	markdown goldmark.Markdown
}

type QuestionRequest struct {
	Topic      string `json:"topic" binding:"required,max=50"`
	Difficulty string `json:"difficulty" binding:"required,oneof=easy medium hard Easy Medium Hard"`
	Company    string `json:"company,omitempty" binding:"max=50"`
}

type Question struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Difficulty   string   `json:"difficulty"`
	Topic        string   `json:"topic"`
	Company      string   `json:"company,omitempty"`
	CodeTemplate string   `json:"code_template"`
	Solution     string   `json:"solution"`
	TestCases    []string `json:"test_cases"`
}

// the question a similar one is derived from
type Seed struct {
	Title      string
	Content    string
	Difficulty string
	Topic      string
}

type EvaluationRequest struct {
	Question  string
	Code      string
	Language  string
	Solution  string
	TestCases string
}

type Evaluation struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
	Runtime  *int   `json:"runtime"`
	Memory   *int   `json:"memory"`
}
