package embedder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 64
	defaultConcurrency = 4
)

func New(backend Backend, opts Options) *Client {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &Client{
		backend:     backend,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		progress:    opts.Progress,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
	}
}

func (c *Client) Dimensions() int {
	return c.backend.Dimensions()
}

// releases the cache, if any
func (c *Client) Close() error {
	if c.cache == nil {
		return nil
	}

	return c.cache.Close()
}

// embeds a single text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

// embeds a one-off query text. The cache is consulted but never written,
// so free-form search input does not accumulate on disk.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{text}, false)
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

// embeds texts, preserving order; blocks until done or ctx ends
func (c *Client) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	select {
	case res := <-c.EmbedAsync(ctx, texts):
		return res.Vectors, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// starts embedding texts in the background; the channel receives exactly
// one Result and is then closed
func (c *Client) EmbedAsync(ctx context.Context, texts []string) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		vectors, err := c.embed(ctx, texts, true)
		out <- Result{Vectors: vectors, Err: err}
	}()

	return out
}

func (c *Client) embed(ctx context.Context, texts []string, remember bool) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	keys := make([]string, len(texts))

	for i, t := range texts {
		keys[i] = cacheKey(c.backend.Model(), c.backend.Dimensions(), t)
	}

	var missing []int

	if c.cache != nil {
		cached, err := c.cache.GetMany(keys)
		if err != nil {
			// a broken cache only costs provider calls
			cached = nil
		}

		for i, k := range keys {
			if v, ok := cached[k]; ok {
				vectors[i] = v
			} else {
				missing = append(missing, i)
			}
		}

		c.metrics.CacheLookups(len(texts)-len(missing), len(missing))
	} else {
		missing = make([]int, len(texts))
		for i := range missing {
			missing[i] = i
		}
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	if err := c.fetch(ctx, texts, missing, vectors); err != nil {
		return nil, err
	}

	if c.cache != nil && remember {
		fresh := make(map[string][]float32, len(missing))
		for _, i := range missing {
			fresh[keys[i]] = vectors[i]
		}

		_ = c.cache.PutMany(fresh) //nolint:errcheck // cache writes are best effort
	}

	return vectors, nil
}

// fills vectors[i] for every i in missing, batching and fanning out calls
func (c *Client) fetch(ctx context.Context, texts []string, missing []int, vectors [][]float32) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	var (
		mu   sync.Mutex
		done int
	)

	total := len(missing)
	dim := c.backend.Dimensions()

	for start := 0; start < total; start += c.batchSize {
		batch := missing[start:min(start+c.batchSize, total)]

		g.Go(func() error {
			input := make([]string, len(batch))
			for j, i := range batch {
				input[j] = texts[i]
			}

			begin := time.Now()
			result, err := c.backend.GenerateEmbeddings(gctx, input)
			c.metrics.ObserveEmbedding(err, time.Since(begin))

			if err != nil {
				return fmt.Errorf("embedding batch at %d failed: %w", start, err)
			}

			if len(result) != len(batch) {
				return fmt.Errorf("embedding batch at %d: expected %d vectors, got %d", start, len(batch), len(result))
			}

			for j, i := range batch {
				if dim > 0 && len(result[j]) != dim {
					return fmt.Errorf("embedding for text %d has length %d, want %d", i, len(result[j]), dim)
				}

				vectors[i] = result[j]
			}

			if c.progress != nil {
				mu.Lock()
				done += len(batch)
				c.progress(done, total)
				mu.Unlock()
			}

			return nil
		})
	}

	return g.Wait()
}
