package embedder

import (
	"context"
	"errors"

	"codeberg.org/interprep/server/internal/metrics"
)

var ErrEmptyInput = errors.New("no texts to embed")

// the raw provider the client batches over; llm.OpenAIEmbedder satisfies it
type Backend interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Model() string
}

// persistent text -> vector cache
type Cache interface {
	GetMany(keys []string) (map[string][]float32, error)
	PutMany(entries map[string][]float32) error
	Close() error
}

// called after every completed batch with the running total
type ProgressFunc func(done, total int)

type Options struct {
	BatchSize   int
	Concurrency int
	Cache       Cache
	Metrics     *metrics.Metrics
	Progress    ProgressFunc
}

// outcome of an asynchronous embedding call
type Result struct {
	Vectors [][]float32
	Err     error
}

// Client batches texts, fans batches out to the backend and caches vectors.
type Client struct {
	backend     Backend
	cache       Cache
	metrics     *metrics.Metrics
	progress    ProgressFunc
	batchSize   int
	concurrency int
}
