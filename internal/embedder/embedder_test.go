package embedder

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend maps each text to a vector derived from its length and first byte
type mockBackend struct {
	mu      sync.Mutex
	calls   int
	inputs  []string
	err     error
	dim     int
	badSize bool
}

func (m *mockBackend) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.calls++
	m.inputs = append(m.inputs, texts...)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	if m.badSize {
		return [][]float32{{1}}, nil
	}

	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vectorFor(t, m.dim)
	}

	return out, nil
}

func (m *mockBackend) Dimensions() int { return m.dim }
func (m *mockBackend) Model() string   { return "mock" }

func vectorFor(t string, dim int) []float32 {
	v := make([]float32, dim)
	v[0] = float32(len(t))
	if len(t) > 0 && dim > 1 {
		v[1] = float32(t[0])
	}

	return v
}

func TestEmbedManyPreservesOrderAcrossBatches(t *testing.T) {
	backend := &mockBackend{dim: 2}
	client := New(backend, Options{BatchSize: 2, Concurrency: 3})

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	vectors, err := client.EmbedMany(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		assert.Equal(t, vectorFor(text, 2), vectors[i])
	}

	assert.Equal(t, 3, backend.calls)
}

func TestEmbedManyEmptyInput(t *testing.T) {
	client := New(&mockBackend{dim: 2}, Options{})

	_, err := client.EmbedMany(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEmbedManyPropagatesBackendError(t *testing.T) {
	boom := errors.New("provider down")
	client := New(&mockBackend{dim: 2, err: boom}, Options{BatchSize: 1})

	_, err := client.EmbedMany(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, boom)
}

func TestEmbedManyRejectsShortResponses(t *testing.T) {
	client := New(&mockBackend{dim: 2, badSize: true}, Options{BatchSize: 4})

	_, err := client.EmbedMany(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbedAsyncDeliversOnce(t *testing.T) {
	client := New(&mockBackend{dim: 2}, Options{})

	ch := client.EmbedAsync(context.Background(), []string{"x"})

	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Len(t, res.Vectors, 1)

	_, ok = <-ch
	assert.False(t, ok)
}

func TestEmbedManyHonoursCancellation(t *testing.T) {
	client := New(&mockBackend{dim: 2}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.EmbedMany(ctx, []string{"x"})
	assert.Error(t, err)
}

func TestProgressReportsTotal(t *testing.T) {
	var (
		mu   sync.Mutex
		last int
	)

	client := New(&mockBackend{dim: 2}, Options{
		BatchSize: 2,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()

			assert.Equal(t, 5, total)
			last = max(last, done)
		},
	})

	_, err := client.EmbedMany(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Equal(t, 5, last)
}

func TestBoltCacheAvoidsRepeatCalls(t *testing.T) {
	cache, err := OpenBoltCache(filepath.Join(t.TempDir(), "cache", "embeddings.db"))
	require.NoError(t, err)

	backend := &mockBackend{dim: 2}
	client := New(backend, Options{Cache: cache})
	defer client.Close() //nolint:errcheck

	_, err = client.EmbedMany(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls)

	// only the new text reaches the backend
	vectors, err := client.EmbedMany(context.Background(), []string{"b", "c", "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls)
	assert.Equal(t, []string{"a", "b", "c"}, backend.inputs)

	assert.Equal(t, vectorFor("b", 2), vectors[0])
	assert.Equal(t, vectorFor("c", 2), vectors[1])
	assert.Equal(t, vectorFor("a", 2), vectors[2])
}

func TestEmbedQueryReadsButNeverWritesCache(t *testing.T) {
	cache, err := OpenBoltCache(filepath.Join(t.TempDir(), "embeddings.db"))
	require.NoError(t, err)

	backend := &mockBackend{dim: 2}
	client := New(backend, Options{Cache: cache})
	defer client.Close() //nolint:errcheck

	ctx := context.Background()

	_, err = client.Embed(ctx, "indexed text")
	require.NoError(t, err)
	require.Equal(t, 1, backend.calls)

	// a query matching an indexed text is served from the cache
	v, err := client.EmbedQuery(ctx, "indexed text")
	require.NoError(t, err)
	assert.Equal(t, vectorFor("indexed text", 2), v)
	assert.Equal(t, 1, backend.calls)

	// free-form queries go to the backend every time and leave no entry
	for range 2 {
		_, err = client.EmbedQuery(ctx, "how do I reverse a list")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, backend.calls)

	cached, err := cache.GetMany([]string{
		cacheKey("mock", 2, "indexed text"),
		cacheKey("mock", 2, "how do I reverse a list"),
	})
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestCacheKeyDependsOnModelAndDimension(t *testing.T) {
	base := cacheKey("m", 384, "text")

	assert.Equal(t, base, cacheKey("m", 384, "text"))
	assert.NotEqual(t, base, cacheKey("m2", 384, "text"))
	assert.NotEqual(t, base, cacheKey("m", 1536, "text"))
	assert.NotEqual(t, base, cacheKey("m", 384, "text2"))
}

func TestVectorCodecRoundTrip(t *testing.T) {
	v := []float32{0, -1.5, 3.25, 1e-30}
	assert.Equal(t, v, decodeVector(encodeVector(v)))
}
