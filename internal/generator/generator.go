package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/metrics"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/sync/errgroup"
)

const defaultMaxTokens = 2048

func New(gen llm.TextGenerator, m *metrics.Metrics) *Generator {
	return &Generator{
		llm:      gen,
		metrics:  m,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (g *Generator) Model() string {
	return g.llm.Model()
}

// generates a full question: statement first, then template, solution and
// test cases in parallel
func (g *Generator) GenerateQuestion(ctx context.Context, req QuestionRequest) (*Question, error) {
	text, err := g.call(ctx, "question", questionPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate question: %w", err)
	}

	title, content := splitTitle(text)

	q := &Question{
		Title:      title,
		Content:    content,
		Difficulty: req.Difficulty,
		Topic:      req.Topic,
		Company:    req.Company,
	}

	var testCases string

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		q.CodeTemplate, err = g.call(egCtx, "template", templatePrompt(title, content))
		return err
	})

	eg.Go(func() error {
		var err error
		q.Solution, err = g.call(egCtx, "solution", solutionPrompt(title, content))
		return err
	})

	eg.Go(func() error {
		var err error
		testCases, err = g.call(egCtx, "test_cases", testCasesPrompt(title, content))
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to complete question %q: %w", title, err)
	}

	q.CodeTemplate = extractCode(q.CodeTemplate)
	q.TestCases = []string{testCases}

	return q, nil
}

// generates a new question on the same topic and difficulty as seed
func (g *Generator) GenerateSimilar(ctx context.Context, seed Seed) (*Question, error) {
	text, err := g.call(ctx, "similar", similarPrompt(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to generate similar question: %w", err)
	}

	title, content := splitTitle(text)

	return &Question{
		Title:      title,
		Content:    content,
		Difficulty: seed.Difficulty,
		Topic:      seed.Topic,
	}, nil
}

// rewrites a question's statement and returns it as HTML
func (g *Generator) Enhance(ctx context.Context, seed Seed) (string, error) {
	text, err := g.call(ctx, "enhance", enhancePrompt(seed))
	if err != nil {
		return "", fmt.Errorf("failed to enhance question: %w", err)
	}

	return g.ToHTML(text)
}

func (g *Generator) call(ctx context.Context, task, prompt string) (string, error) {
	begin := time.Now()

	resp, err := g.llm.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages:     []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:    defaultMaxTokens,
	})

	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = ErrEmptyResponse
	}

	g.metrics.ObserveLLM(task, err, time.Since(begin))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}

// first non-empty line is the title (markdown decoration removed), the rest is content
func splitTitle(text string) (string, string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	for i, line := range lines {
		title := strings.TrimSpace(line)
		title = strings.TrimLeft(title, "#* ")
		title = strings.TrimRight(title, "* ")
		title = strings.TrimSpace(strings.TrimPrefix(title, "Title:"))

		if title == "" {
			continue
		}

		return title, strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
	}

	return "", ""
}

// returns the body of a single fenced code block, or response unchanged
func extractCode(response string) string {
	if strings.Count(response, "```") != 2 {
		return response
	}

	start := strings.Index(response, "```") + 3

	newline := strings.Index(response[start:], "\n")
	if newline == -1 {
		return response
	}

	body := response[start+newline+1:]

	end := strings.Index(body, "```")
	if end == -1 {
		return response
	}

	return strings.TrimRight(body[:end], "\n")
}
