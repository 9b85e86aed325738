package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements llm.TextGenerator for testing
type mockGenerator struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (m *mockGenerator) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	prompt := req.Messages[len(req.Messages)-1].Content

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	text, err := m.respond(prompt)
	if err != nil {
		return nil, err
	}

	return &llm.TextGenerationResponse{Text: text}, nil
}

func (m *mockGenerator) Model() string {
	return "mock-model"
}

func TestGenerateQuestion(t *testing.T) {
	mock := &mockGenerator{respond: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Generate a medium"):
			return "## Two Sum Variant\n\nGiven an array, find two numbers.", nil
		case strings.HasPrefix(prompt, "Create a code template"):
			return "```go\nfunc twoSum(nums []int) []int {\n}\n```", nil
		case strings.HasPrefix(prompt, "Provide a solution"):
			return "use a hash map", nil
		case strings.HasPrefix(prompt, "Generate 3 test cases"):
			return "1. [2,7] -> [0,1]", nil
		}

		return "", errors.New("unexpected prompt: " + prompt)
	}}

	g := New(mock, nil)

	q, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Topic:      "arrays",
		Difficulty: "medium",
		Company:    "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "Two Sum Variant", q.Title)
	assert.Equal(t, "Given an array, find two numbers.", q.Content)
	assert.Equal(t, "func twoSum(nums []int) []int {\n}", q.CodeTemplate)
	assert.Equal(t, "use a hash map", q.Solution)
	assert.Equal(t, []string{"1. [2,7] -> [0,1]"}, q.TestCases)
	assert.Equal(t, "Acme", q.Company)

	assert.Len(t, mock.prompts, 4)
	assert.Contains(t, mock.prompts[0], "that might be asked at Acme")
}

func TestGenerateQuestion_FollowUpError(t *testing.T) {
	mock := &mockGenerator{respond: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Provide a solution") {
			return "", errors.New("upstream down")
		}

		return "Title\nbody", nil
	}}

	_, err := New(mock, nil).GenerateQuestion(context.Background(), QuestionRequest{Topic: "graphs", Difficulty: "hard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestGenerateQuestion_EmptyResponse(t *testing.T) {
	mock := &mockGenerator{respond: func(string) (string, error) { return "   ", nil }}

	_, err := New(mock, nil).GenerateQuestion(context.Background(), QuestionRequest{Topic: "graphs", Difficulty: "hard"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateSimilar(t *testing.T) {
	mock := &mockGenerator{respond: func(string) (string, error) {
		return "**Three Sum**\nFind three numbers that add to zero.", nil
	}}

	q, err := New(mock, nil).GenerateSimilar(context.Background(), Seed{
		Title:      "Two Sum",
		Content:    "Find two numbers.",
		Difficulty: "easy",
		Topic:      "arrays",
	})
	require.NoError(t, err)

	assert.Equal(t, "Three Sum", q.Title)
	assert.Equal(t, "Find three numbers that add to zero.", q.Content)
	assert.Equal(t, "easy", q.Difficulty)
	assert.Equal(t, "arrays", q.Topic)
	assert.Contains(t, mock.prompts[0], "Title: Two Sum")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		feedback string
		want     string
	}{
		{"Looks good, all cases pass.", StatusAccepted},
		{"The answer is Incorrect for empty input.", StatusWrongAnswer},
		{"This returns the wrong index.", StatusWrongAnswer},
		{"Correct, but would exceed the time limit.", StatusTimeLimitExceeded},
		{"Too slow for n = 10^5.", StatusTimeLimitExceeded},
		{"Exceeds the memory limit.", StatusMemoryLimitExceeded},
		{"Uses too much memory.", StatusMemoryLimitExceeded},
		{"Wrong and too slow.", StatusWrongAnswer},
		{"", StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.feedback, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.feedback))
		})
	}
}

func TestEvaluate(t *testing.T) {
	mock := &mockGenerator{respond: func(string) (string, error) {
		return "The solution is too slow.", nil
	}}

	m := metrics.New()

	eval, err := New(mock, m).Evaluate(context.Background(), EvaluationRequest{
		Question: "Two Sum",
		Code:     "print(1)",
		Language: "python",
		Solution: "hash map",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusTimeLimitExceeded, eval.Status)
	assert.Equal(t, "The solution is too slow.", eval.Feedback)
	assert.Nil(t, eval.Runtime)
	assert.Nil(t, eval.Memory)

	assert.Contains(t, mock.prompts[0], "```python\nprint(1)\n```")
	assert.Contains(t, mock.prompts[0], "Reference solution")
	assert.NotContains(t, mock.prompts[0], "Test cases")

	count, err := testutil.GatherAndCount(m.Registry(), "interprep_llm_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestToHTML(t *testing.T) {
	g := New(&mockGenerator{}, nil)

	html, err := g.ToHTML("## Examples\n\n**Input:** `[1,2]`\n\n- n <= 10\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div class="question-content">`))
	assert.True(t, strings.HasSuffix(html, "</div>"))
	assert.Contains(t, html, "<h2>Examples</h2>")
	assert.Contains(t, html, "<strong>Input:</strong>")
	assert.Contains(t, html, "<code>[1,2]</code>")
	assert.Contains(t, html, "<li>n &lt;= 10</li>")
	assert.NotContains(t, html, "<script>")

	empty, err := g.ToHTML("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEnhance(t *testing.T) {
	mock := &mockGenerator{respond: func(string) (string, error) {
		return "### Description\n\nReverse a list.", nil
	}}

	html, err := New(mock, nil).Enhance(context.Background(), Seed{Title: "Reverse", Content: "reverse it"})
	require.NoError(t, err)
	assert.Contains(t, html, "<h3>Description</h3>")
	assert.Contains(t, html, "<p>Reverse a list.</p>")
}

func TestSplitTitle(t *testing.T) {
	title, content := splitTitle("\n\nTitle: Merge Intervals\nGiven intervals...\n\nMore.")
	assert.Equal(t, "Merge Intervals", title)
	assert.Equal(t, "Given intervals...\n\nMore.", content)

	title, content = splitTitle("")
	assert.Empty(t, title)
	assert.Empty(t, content)
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, "x := 1", extractCode("Here:\n```go\nx := 1\n```\nDone"))
	assert.Equal(t, "no fences", extractCode("no fences"))

	multi := "```a\n1\n```\n```b\n2\n```"
	assert.Equal(t, multi, extractCode(multi))
}
