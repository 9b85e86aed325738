package retriever

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/metrics"
	"codeberg.org/interprep/server/internal/vectorstore"
	"golang.org/x/sync/singleflight"
)

var (
	ErrSourceNotFound      = catalog.ErrSourceNotFound
	ErrSchema              = catalog.ErrSchema
	ErrNotFound            = catalog.ErrNotFound
	ErrInvalidArgument     = catalog.ErrInvalidArgument
	ErrDimensionMismatch   = vectorstore.ErrDimensionMismatch
	ErrPersistence         = vectorstore.ErrPersistence
	ErrProviderUnavailable = errors.New("embedding provider unavailable")
	ErrNotInitialized      = errors.New("retrieval service not initialized")
)

// text -> vector provider; embedder.Client satisfies it
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

// optional; search text goes through EmbedQuery when the embedder has it
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	Dimensions     int
	IndexPath      string // empty disables persistence
	EmbedTimeout   time.Duration
	PersistTimeout time.Duration
	Metrics        *metrics.Metrics
}

// Service owns the catalog and its vector index. State is published as an
// immutable snapshot; readers never lock.
type Service struct {
	cfg      Config
	source   catalog.Source
	embedder Embedder

	current atomic.Pointer[snapshot]
	gate    singleflight.Group
	writeMu sync.Mutex

	// saves are applied in the order they were requested, even when a
	// caller stopped waiting on an earlier one
	saveMu     sync.Mutex
	saveSeq    atomic.Uint64
	savedSeq   uint64
	writeIndex func(store *vectorstore.Store, path string) error
}

type snapshot struct {
	catalog *catalog.Catalog
	store   *vectorstore.Store
	norms   []float64
	origin  string
	builtAt time.Time
}

// an item with its cosine similarity to the query
type Match struct {
	catalog.Item
	SimilarityScore float64 `json:"similarity_score"`
}

// an item with its euclidean distance to the query
type Neighbor struct {
	catalog.Item
	Distance float32 `json:"distance"`
	Score    float32 `json:"score"`
}

type Stats struct {
	Ready      bool      `json:"ready"`
	Items      int       `json:"items"`
	Dimensions int       `json:"dimensions"`
	Origin     string    `json:"origin,omitempty"`
	BuiltAt    time.Time `json:"built_at,omitempty"`
}

const (
	originLoaded  = "loaded"
	originRebuilt = "rebuilt"
)
