package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/internal/retriever"
	"codeberg.org/interprep/server/interprep/questions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	questions []questions.Question
	favorites map[int64]bool
	viewedBy  int64
	embedding []float32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: []questions.Question{
			{ID: 1, Title: "Two Sum", Topic: "arrays", Difficulty: "easy", Content: "find two", Solution: "hash map"},
			{ID: 2, Title: "Tree Depth", Topic: "tree", Difficulty: "medium", Content: "depth", Solution: "dfs"},
			{ID: 3, Title: "Sum Arrays", Topic: "arrays", Difficulty: "medium", Content: "sum", Solution: "loop"},
		},
		favorites: map[int64]bool{},
	}
}

func (f *fakeStore) List(_ context.Context, flt catalog.Filter, limit, offset int) ([]questions.Question, int, error) {
	var out []questions.Question
	for _, q := range f.questions {
		if flt.Topic == "" || q.Topic == flt.Topic {
			out = append(out, q)
		}
	}

	total := len(out)
	out = out[min(offset, total):min(offset+limit, total)]

	return out, total, nil
}

func (f *fakeStore) ByIDs(_ context.Context, ids []int64) ([]questions.Question, error) {
	var out []questions.Question
	for _, id := range ids {
		if q, err := f.Get(context.Background(), id); err == nil {
			out = append(out, *q)
		}
	}

	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (*questions.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			return &q, nil
		}
	}

	return nil, questions.ErrQuestionNotFound
}

func (f *fakeStore) View(ctx context.Context, id, userID int64) (*questions.Detail, error) {
	q, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	f.viewedBy = userID

	return &questions.Detail{Question: *q, IsFavorite: f.favorites[id]}, nil
}

func (f *fakeStore) Create(_ context.Context, req questions.CreateRequest, embedding []float32) (*questions.Question, error) {
	q := questions.Question{
		ID:         int64(len(f.questions) + 1),
		Title:      req.Title,
		Content:    req.Content,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Solution:   req.Solution,
		TestCases:  req.TestCases,
	}
	f.questions = append(f.questions, q)
	f.embedding = embedding

	return &q, nil
}

func (f *fakeStore) UpdateContent(_ context.Context, id int64, content string) error {
	for i := range f.questions {
		if f.questions[i].ID == id {
			f.questions[i].Content = content
			return nil
		}
	}

	return questions.ErrQuestionNotFound
}

func (f *fakeStore) AddFavorite(_ context.Context, _, id int64) error {
	f.favorites[id] = true
	return nil
}

func (f *fakeStore) RemoveFavorite(_ context.Context, _, id int64) error {
	if !f.favorites[id] {
		return questions.ErrFavoriteNotFound
	}

	delete(f.favorites, id)

	return nil
}

type fakeGenerator struct {
	err error
}

func (g *fakeGenerator) GenerateQuestion(_ context.Context, req generator.QuestionRequest) (*generator.Question, error) {
	if g.err != nil {
		return nil, g.err
	}

	return &generator.Question{
		Title:      "Merge Intervals",
		Content:    "merge overlapping intervals",
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Solution:   "sort then sweep",
		TestCases:  []string{"[[1,3],[2,4]] -> [[1,4]]"},
	}, nil
}

func (g *fakeGenerator) GenerateSimilar(_ context.Context, seed generator.Seed) (*generator.Question, error) {
	return &generator.Question{Title: "Like " + seed.Title, Content: "variant", Topic: seed.Topic, Difficulty: seed.Difficulty}, nil
}

func (g *fakeGenerator) Enhance(_ context.Context, seed generator.Seed) (string, error) {
	return "<p>" + seed.Content + "</p>", nil
}

type fakeIndex struct {
	added   []catalog.Item
	vectors [][]float32
	matches []retriever.Match
	err     error
}

func (i *fakeIndex) FindSimilar(context.Context, string, int, catalog.Filter) ([]retriever.Match, error) {
	return i.matches, i.err
}

func (i *fakeIndex) AddVector(_ context.Context, item catalog.Item, vector []float32) (int, error) {
	i.added = append(i.added, item)
	i.vectors = append(i.vectors, vector)

	return len(i.added) - 1, nil
}

type fakeEmbedder struct {
	err error
}

func (e fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}

	return []float32{0.1, 0.2, 0.3}, nil
}

type fixture struct {
	store  *fakeStore
	gen    *fakeGenerator
	index  *fakeIndex
	router *gin.Engine
}

func setup(t *testing.T, emb Embedder) *fixture {
	t.Helper()

	f := &fixture{index: &fakeIndex{}}

	return f.mount(emb, f.index)
}

// like setup, but generated questions are never appended to the index
func setupWithoutIndexer(t *testing.T, emb Embedder) *fixture {
	t.Helper()

	f := &fixture{index: &fakeIndex{}}

	return f.mount(emb, nil)
}

func (f *fixture) mount(emb Embedder, indexer Indexer) *fixture {
	gin.SetMode(gin.TestMode)

	f.store = newFakeStore()
	f.gen = &fakeGenerator{}

	deps := Deps{Store: f.store, Generator: f.gen, Index: f.index, Embedder: emb, Indexer: indexer}

	signedIn := func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Next()
	}

	f.router = gin.New()
	f.router.GET("/questions", ListQuestionsHandler(deps))
	f.router.GET("/questions/:id", GetQuestionHandler(f.store))
	f.router.GET("/me/questions/:id", signedIn, GetQuestionHandler(f.store))
	f.router.POST("/questions/generate", GenerateQuestionHandler(deps))
	f.router.POST("/questions/:id/similar", GenerateSimilarHandler(deps))
	f.router.POST("/questions/:id/enhance", EnhanceQuestionHandler(deps))
	f.router.POST("/questions/:id/favorite", signedIn, AddFavoriteHandler(f.store))
	f.router.DELETE("/questions/:id/favorite", signedIn, RemoveFavoriteHandler(f.store))
	f.router.POST("/anon/questions/:id/favorite", AddFavoriteHandler(f.store))

	return f
}

func (f *fixture) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func TestListQuestions(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodGet, "/questions?topic=arrays&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "Two Sum", resp.Questions[0].Title)
	assert.Empty(t, resp.Questions[0].Solution)
	assert.Equal(t, 2, resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasMore)
}

func TestListQuestions_SemanticQuery(t *testing.T) {
	f := setup(t, fakeEmbedder{})
	f.index.matches = []retriever.Match{
		{Item: catalog.Item{ID: 3}, SimilarityScore: 0.9},
		{Item: catalog.Item{ID: 1}, SimilarityScore: 0.5},
	}

	w := f.do(http.MethodGet, "/questions?query=sum", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, int64(3), resp.Questions[0].ID)
	assert.Equal(t, int64(1), resp.Questions[1].ID)
}

func TestListQuestions_IndexNotReady(t *testing.T) {
	f := setup(t, fakeEmbedder{})
	f.index.err = retriever.ErrNotInitialized

	w := f.do(http.MethodGet, "/questions?query=sum", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetQuestion(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodGet, "/questions/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), f.store.viewedBy)

	var detail questions.Detail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Tree Depth", detail.Title)
	assert.Empty(t, detail.Solution)

	w = f.do(http.MethodGet, "/me/questions/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), f.store.viewedBy)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/questions/99", nil).Code)
}

func TestGenerateQuestion(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodPost, "/questions/generate", generator.QuestionRequest{Topic: "intervals", Difficulty: "medium"})
	require.Equal(t, http.StatusCreated, w.Code)

	var q questions.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "Merge Intervals", q.Title)
	assert.JSONEq(t, `["[[1,3],[2,4]] -> [[1,4]]"]`, string(q.TestCases))

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, f.store.embedding)
	require.Len(t, f.index.added, 1)
	assert.Equal(t, q.ID, f.index.added[0].ID)

	// the index receives the vector stored with the row
	assert.Equal(t, [][]float32{{0.1, 0.2, 0.3}}, f.index.vectors)
}

func TestGenerateQuestion_NoIndexerLeavesIndexAlone(t *testing.T) {
	f := setupWithoutIndexer(t, fakeEmbedder{})

	w := f.do(http.MethodPost, "/questions/generate", generator.QuestionRequest{Topic: "intervals", Difficulty: "medium"})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, f.store.embedding)
	assert.Len(t, f.store.questions, 4)
	assert.Empty(t, f.index.added)
}

func TestGenerateQuestion_EmbeddingFailureStillSaves(t *testing.T) {
	f := setup(t, fakeEmbedder{err: errors.New("provider down")})

	w := f.do(http.MethodPost, "/questions/generate", generator.QuestionRequest{Topic: "graphs", Difficulty: "hard"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, f.store.embedding)
	assert.Len(t, f.store.questions, 4)
	assert.Empty(t, f.index.added)
}

func TestGenerateQuestion_Errors(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodPost, "/questions/generate", map[string]string{"topic": "graphs", "difficulty": "impossible"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.gen.err = errors.New("model overloaded")
	w = f.do(http.MethodPost, "/questions/generate", generator.QuestionRequest{Topic: "graphs", Difficulty: "hard"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerateSimilar(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodPost, "/questions/1/similar", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var q questions.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "Like Two Sum", q.Title)
	assert.Equal(t, "arrays", q.Topic)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/questions/99/similar", nil).Code)
}

func TestEnhanceQuestion(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	w := f.do(http.MethodPost, "/questions/2/enhance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>depth</p>", f.store.questions[1].Content)
}

func TestFavorites(t *testing.T) {
	f := setup(t, fakeEmbedder{})

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/questions/1/favorite", nil).Code)
	assert.True(t, f.store.favorites[1])

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/questions/99/favorite", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/anon/questions/1/favorite", nil).Code)

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/questions/1/favorite", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/questions/1/favorite", nil).Code)
}
