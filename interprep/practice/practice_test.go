package practice

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestions struct {
	bank     []questions.Question
	history  []questions.History
	recorded []questions.History
}

func (f *fakeQuestions) List(_ context.Context, flt catalog.Filter, limit, offset int) ([]questions.Question, int, error) {
	var out []questions.Question

	for _, q := range f.bank {
		if flt.Topic != "" && q.Topic != flt.Topic {
			continue
		}

		out = append(out, q)
	}

	total := len(out)
	out = out[min(offset, len(out)):]

	return out[:min(limit, len(out))], total, nil
}

func (f *fakeQuestions) Get(_ context.Context, id int64) (*questions.Question, error) {
	for _, q := range f.bank {
		if q.ID == id {
			return &q, nil
		}
	}

	return nil, questions.ErrQuestionNotFound
}

func (f *fakeQuestions) History(context.Context, int64) ([]questions.History, error) {
	return f.history, nil
}

func (f *fakeQuestions) RecordPractice(_ context.Context, userID, questionID int64, completed bool) (*questions.History, error) {
	h := questions.History{UserID: userID, QuestionID: questionID, Completed: completed, Attempts: 1}
	f.recorded = append(f.recorded, h)

	return &h, nil
}

type fakeSubmissions struct {
	created []submissions.Submission
	counts  map[string]int
}

func (f *fakeSubmissions) Create(_ context.Context, s submissions.Submission) (*submissions.Submission, error) {
	s.ID = int64(len(f.created) + 1)
	s.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.created = append(f.created, s)

	return &s, nil
}

func (f *fakeSubmissions) StatusCounts(context.Context, int64) (map[string]int, error) {
	return f.counts, nil
}

type fakeEvaluator struct {
	eval *generator.Evaluation
	err  error
	got  generator.EvaluationRequest
}

func (f *fakeEvaluator) Evaluate(_ context.Context, req generator.EvaluationRequest) (*generator.Evaluation, error) {
	f.got = req
	return f.eval, f.err
}

func bank(n int) []questions.Question {
	out := make([]questions.Question, n)
	for i := range out {
		out[i] = questions.Question{ID: int64(i + 1), Title: "q", Topic: "arrays", Solution: "secret"}
	}

	return out
}

func ids(qs []questions.Question) []int64 {
	out := make([]int64, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}

	return out
}

func TestSelectSession(t *testing.T) {
	candidates := bank(6)
	completed := map[int64]bool{1: true, 3: true}

	assert.Equal(t, []int64{2, 4, 5}, ids(SelectSession(candidates, completed, 3)))
	assert.Equal(t, []int64{2, 4, 5, 6, 1}, ids(SelectSession(candidates, completed, 5)))
	assert.Equal(t, []int64{2, 4, 5, 6, 1, 3}, ids(SelectSession(candidates, completed, 10)))
	assert.Empty(t, SelectSession(candidates, completed, 0))
	assert.Empty(t, SelectSession(nil, completed, 5))
}

func TestSession(t *testing.T) {
	qs := &fakeQuestions{
		bank: bank(8),
		history: []questions.History{
			{QuestionID: 1, Completed: true},
			{QuestionID: 2, Completed: false},
		},
	}

	svc := NewService(qs, &fakeSubmissions{}, &fakeEvaluator{})

	session, err := svc.Session(context.Background(), 7, SessionRequest{})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3, 4, 5, 6}, ids(session), "default size, completed question skipped")

	for _, q := range session {
		assert.Empty(t, q.Solution, "solutions are not exposed")
	}
}

func TestSession_FillsWithCompleted(t *testing.T) {
	qs := &fakeQuestions{
		bank:    bank(3),
		history: []questions.History{{QuestionID: 2, Completed: true}},
	}

	session, err := NewService(qs, &fakeSubmissions{}, &fakeEvaluator{}).
		Session(context.Background(), 7, SessionRequest{Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3, 2}, ids(session))
}

func TestComputeProgress(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	history := []questions.History{
		{QuestionID: 1, Title: "a", Topic: "arrays", Difficulty: "easy", Completed: true, LastPracticed: now},
		{QuestionID: 2, Title: "b", Topic: "arrays", Difficulty: "hard", LastPracticed: now.Add(2 * time.Hour)},
		{QuestionID: 3, Title: "c", Topic: "graphs", Difficulty: "hard", LastPracticed: now.Add(time.Hour)},
	}

	p := ComputeProgress(history, map[string]int{"accepted": 1, "wrong_answer": 3})

	assert.Equal(t, 3, p.TotalPracticed)
	assert.Equal(t, 1, p.TotalCompleted)
	assert.InDelta(t, 1.0/3.0, p.CompletionRate, 1e-9)
	assert.Equal(t, 4, p.TotalSubmissions)
	assert.Equal(t, 1, p.SuccessfulSubmissions)
	assert.InDelta(t, 0.25, p.SuccessRate, 1e-9)
	assert.Equal(t, map[string]int{"arrays": 2, "graphs": 1}, p.Topics)
	assert.Equal(t, map[string]int{"easy": 1, "hard": 2}, p.Difficulties)

	require.Len(t, p.RecentActivity, 3)
	assert.Equal(t, int64(2), p.RecentActivity[0].QuestionID)
	assert.Equal(t, int64(3), p.RecentActivity[1].QuestionID)
	assert.Equal(t, int64(1), p.RecentActivity[2].QuestionID)
}

func TestComputeProgress_Empty(t *testing.T) {
	p := ComputeProgress(nil, nil)

	assert.Zero(t, p.TotalPracticed)
	assert.InDelta(t, 0.0, p.CompletionRate, 1e-9)
	assert.InDelta(t, 0.0, p.SuccessRate, 1e-9)
	assert.NotNil(t, p.RecentActivity)
}

func TestEvaluate_Accepted(t *testing.T) {
	qs := &fakeQuestions{bank: bank(2)}
	subs := &fakeSubmissions{}
	eval := &fakeEvaluator{eval: &generator.Evaluation{Status: generator.StatusAccepted, Feedback: "nice"}}

	res, err := NewService(qs, subs, eval).Evaluate(context.Background(), 9, EvaluateRequest{
		QuestionID: 2,
		Code:       "return 1",
		Language:   "python",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.SubmissionID)
	assert.Equal(t, generator.StatusAccepted, res.Status)
	assert.Equal(t, "nice", res.Feedback)
	assert.Equal(t, "secret", eval.got.Solution)

	require.Len(t, subs.created, 1)
	assert.Equal(t, int64(9), subs.created[0].UserID)

	require.Len(t, qs.recorded, 1)
	assert.True(t, qs.recorded[0].Completed)
}

func TestEvaluate_WrongAnswerDoesNotComplete(t *testing.T) {
	qs := &fakeQuestions{bank: bank(1)}
	subs := &fakeSubmissions{}
	eval := &fakeEvaluator{eval: &generator.Evaluation{Status: generator.StatusWrongAnswer}}

	res, err := NewService(qs, subs, eval).Evaluate(context.Background(), 9, EvaluateRequest{QuestionID: 1, Code: "x", Language: "go"})
	require.NoError(t, err)

	assert.Equal(t, generator.StatusWrongAnswer, res.Status)
	assert.Len(t, subs.created, 1)
	assert.Empty(t, qs.recorded)
}

func TestEvaluate_Errors(t *testing.T) {
	svc := NewService(&fakeQuestions{bank: bank(1)}, &fakeSubmissions{}, &fakeEvaluator{err: errors.New("llm down")})

	_, err := svc.Evaluate(context.Background(), 1, EvaluateRequest{QuestionID: 99, Code: "x", Language: "go"})
	assert.ErrorIs(t, err, questions.ErrQuestionNotFound)

	_, err = svc.Evaluate(context.Background(), 1, EvaluateRequest{QuestionID: 1, Code: "x", Language: "go"})
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.ErrorContains(t, err, "llm down")
}

func TestRecord(t *testing.T) {
	qs := &fakeQuestions{bank: bank(1)}
	svc := NewService(qs, &fakeSubmissions{}, &fakeEvaluator{})

	h, err := svc.Record(context.Background(), 3, RecordRequest{QuestionID: 1, Completed: true})
	require.NoError(t, err)
	assert.True(t, h.Completed)

	_, err = svc.Record(context.Background(), 3, RecordRequest{QuestionID: 5})
	assert.ErrorIs(t, err, questions.ErrQuestionNotFound)
}
