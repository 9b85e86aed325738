package questions

import (
	"context"

	"codeberg.org/interprep/server/api/rest/pagination"
	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/internal/retriever"
	"codeberg.org/interprep/server/interprep/questions"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Store interface {
	List(ctx context.Context, f catalog.Filter, limit, offset int) ([]questions.Question, int, error)
	ByIDs(ctx context.Context, ids []int64) ([]questions.Question, error)
	Get(ctx context.Context, questionID int64) (*questions.Question, error)
	View(ctx context.Context, questionID, userID int64) (*questions.Detail, error)
	Create(ctx context.Context, req questions.CreateRequest, embedding []float32) (*questions.Question, error)
	UpdateContent(ctx context.Context, questionID int64, content string) error
	AddFavorite(ctx context.Context, userID, questionID int64) error
	RemoveFavorite(ctx context.Context, userID, questionID int64) error
}

type Generator interface {
	GenerateQuestion(ctx context.Context, req generator.QuestionRequest) (*generator.Question, error)
	GenerateSimilar(ctx context.Context, seed generator.Seed) (*generator.Question, error)
	Enhance(ctx context.Context, seed generator.Seed) (string, error)
}

// the semantic index list queries search
type Index interface {
	FindSimilar(ctx context.Context, text string, n int, filter catalog.Filter) ([]retriever.Match, error)
}

// appends generated questions to the live index with their stored embedding
type Indexer interface {
	AddVector(ctx context.Context, item catalog.Item, vector []float32) (int, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Deps struct {
	Store     Store
	Generator Generator
	Index     Index
	Embedder  Embedder

	// nil unless the index is built from postgres; otherwise a generated
	// question would be indexed without being in the catalog source
	Indexer Indexer
}

type ListQuery struct {
	catalog.Filter
	pagination.Page
	Query string `form:"query" binding:"max=2000"`
}

type ListResponse struct {
	Questions  []questions.Question `json:"questions"`
	Pagination pagination.Meta      `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
