package dataset

import (
	"context"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/retriever"
)

const maxResults = 50

// the retrieval operations exposed over HTTP; *retriever.Service implements it
type Retriever interface {
	FilterQuestions(ctx context.Context, filter catalog.Filter, limit int) ([]catalog.Item, error)
	GetByID(ctx context.Context, id int64) (catalog.Item, error)
	Random(ctx context.Context, filter catalog.Filter) (catalog.Item, error)
	FindSimilar(ctx context.Context, text string, n int, filter catalog.Filter) ([]retriever.Match, error)
	FindSimilarToItem(ctx context.Context, id int64, n int, filter catalog.Filter) ([]retriever.Match, error)
	SearchNearest(ctx context.Context, text string, k int) ([]retriever.Neighbor, error)
	Reload(ctx context.Context) error
	Stats() retriever.Stats
}

type FilterQuery struct {
	catalog.Filter
	Limit int `form:"limit,default=10"`
}

type SimilarQuery struct {
	catalog.Filter
	N int `form:"n,default=5"`
}

type SearchQuery struct {
	catalog.Filter
	Query string `form:"query" binding:"required,max=2000"`
	N     int    `form:"n,default=5"`
}

type NearestQuery struct {
	Query string `form:"query" binding:"required,max=2000"`
	K     int    `form:"k,default=5"`
}

type QuestionsResponse struct {
	Questions []catalog.Item `json:"questions"`
	Count     int            `json:"count"`
}

type MatchesResponse struct {
	Results []retriever.Match `json:"results"`
	Count   int               `json:"count"`
}

type NeighborsResponse struct {
	Results []retriever.Neighbor `json:"results"`
	Count   int                  `json:"count"`
}
