package retriever

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/internal/vectorstore"
)

// creates a service; call Initialize before serving queries
func New(cfg Config, source catalog.Source, embedder Embedder) (*Service, error) {
	if source == nil || embedder == nil {
		return nil, fmt.Errorf("%w: source and embedder are required", ErrInvalidArgument)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return &Service{
		cfg:        cfg,
		source:     source,
		embedder:   embedder,
		writeIndex: (*vectorstore.Store).Save,
	}, nil
}

// loads the catalog and its index. Concurrent callers share one attempt;
// once it succeeds later calls return immediately. A failed attempt
// publishes nothing and may be retried.
func (s *Service) Initialize(ctx context.Context) error {
	if s.current.Load() != nil {
		return nil
	}

	_, err, _ := s.gate.Do("initialize", func() (any, error) {
		if s.current.Load() != nil {
			return nil, nil
		}

		cat, err := catalog.Load(ctx, s.source)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}

		snap, err := s.indexCatalog(ctx, cat)
		if err != nil {
			return nil, err
		}

		s.publish(snap)

		return nil, nil
	})

	return err
}

// reports whether Initialize has completed
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

func (s *Service) Stats() Stats {
	snap := s.current.Load()
	if snap == nil {
		return Stats{Dimensions: s.cfg.Dimensions}
	}

	return Stats{
		Ready:      true,
		Items:      snap.catalog.Len(),
		Dimensions: snap.store.Dim(),
		Origin:     snap.origin,
		BuiltAt:    snap.builtAt,
	}
}

// re-reads the source. The vectors are kept only when every row still has
// the same id and embedding text; any other change rebuilds the index.
func (s *Service) Reload(ctx context.Context) error {
	if !s.Ready() {
		return s.Initialize(ctx)
	}

	_, err, _ := s.gate.Do("reload", func() (any, error) {
		cat, err := catalog.Load(ctx, s.source)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}

		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		if cur := s.current.Load(); cur != nil && sameEmbeddings(cur.catalog, cat) {
			s.current.Store(&snapshot{
				catalog: cat,
				store:   cur.store,
				norms:   cur.norms,
				origin:  cur.origin,
				builtAt: cur.builtAt,
			})

			return nil, nil
		}

		snap, err := s.rebuild(ctx, cat, "reload")
		if err != nil {
			return nil, err
		}

		s.current.Store(snap)

		return nil, nil
	})

	return err
}

// embeds one new item and appends it to catalog and index together
func (s *Service) Add(ctx context.Context, item catalog.Item) (int, error) {
	if _, err := s.acquire(ctx); err != nil {
		return 0, err
	}

	vector, err := s.embedOne(ctx, catalog.EmbeddingText(item))
	if err != nil {
		return 0, err
	}

	return s.AddVector(ctx, item, vector)
}

// appends an item whose embedding the caller already computed from
// catalog.EmbeddingText(item)
func (s *Service) AddVector(ctx context.Context, item catalog.Item, vector []float32) (int, error) {
	if _, err := s.acquire(ctx); err != nil {
		return 0, err
	}

	if len(vector) != s.cfg.Dimensions {
		return 0, fmt.Errorf("%w: embedding has length %d, want %d", ErrDimensionMismatch, len(vector), s.cfg.Dimensions)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.current.Load()

	cat, err := cur.catalog.Append(item)
	if err != nil {
		return 0, err
	}

	store := cur.store.Clone()

	idx, err := store.Add(vector)
	if err != nil {
		return 0, err
	}

	if err := s.save(ctx, store); err != nil {
		return 0, err
	}

	norms := make([]float64, len(cur.norms), len(cur.norms)+1)
	copy(norms, cur.norms)
	norms = append(norms, norm(vector))

	s.current.Store(&snapshot{
		catalog: cat,
		store:   store,
		norms:   norms,
		origin:  cur.origin,
		builtAt: cur.builtAt,
	})

	s.cfg.Metrics.SetIndexSize(store.Len())

	return idx, nil
}

// returns the published snapshot, rebuilding first if catalog and index drifted apart
func (s *Service) acquire(ctx context.Context) (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}

	if snap.store.Len() == snap.catalog.Len() {
		return snap, nil
	}

	_, err, _ := s.gate.Do("realign", func() (any, error) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		cur := s.current.Load()
		if cur.store.Len() == cur.catalog.Len() {
			return nil, nil
		}

		logger.Warn("vector index out of sync with catalog, rebuilding",
			"index_size", cur.store.Len(),
			"catalog_size", cur.catalog.Len(),
		)

		fresh, err := s.rebuild(ctx, cur.catalog, "size_mismatch")
		if err != nil {
			return nil, err
		}

		s.current.Store(fresh)

		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return s.current.Load(), nil
}

// loads the persisted index when it matches cat, otherwise rebuilds
func (s *Service) indexCatalog(ctx context.Context, cat *catalog.Catalog) (*snapshot, error) {
	if s.cfg.IndexPath == "" {
		return s.rebuild(ctx, cat, "no_index_path")
	}

	store, err := s.load(ctx)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return s.rebuild(ctx, cat, "missing")
	case err != nil:
		logger.Warn("failed to load vector index, rebuilding", "path", s.cfg.IndexPath, "error", err)
		return s.rebuild(ctx, cat, "load_failed")
	case store.Len() != cat.Len():
		logger.Info("vector index size differs from catalog, rebuilding",
			"index_size", store.Len(),
			"catalog_size", cat.Len(),
		)

		return s.rebuild(ctx, cat, "size_mismatch")
	}

	logger.Info("vector index loaded", "path", s.cfg.IndexPath, "items", store.Len())
	s.cfg.Metrics.SetIndexSize(store.Len())

	return newSnapshot(cat, store, originLoaded), nil
}

// embeds every catalog row, builds a store and persists it
func (s *Service) rebuild(ctx context.Context, cat *catalog.Catalog, reason string) (*snapshot, error) {
	start := time.Now()

	store, err := vectorstore.New(s.cfg.Dimensions)
	if err != nil {
		return nil, err
	}

	if cat.Len() > 0 {
		texts := make([]string, cat.Len())
		for i := range texts {
			texts[i] = catalog.EmbeddingText(cat.At(i))
		}

		vectors, err := s.embedMany(ctx, texts)
		if err != nil {
			return nil, err
		}

		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrProviderUnavailable, len(texts), len(vectors))
		}

		if err := store.Build(vectors); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	logger.Info("vector index rebuilt",
		"reason", reason,
		"items", store.Len(),
		"duration", time.Since(start),
	)

	s.cfg.Metrics.IndexRebuilt(reason, store.Len())

	return newSnapshot(cat, store, originRebuilt), nil
}

// reports whether b would embed to the same vectors as a, row for row
func sameEmbeddings(a, b *catalog.Catalog) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		x, y := a.At(i), b.At(i)
		if x.ID != y.ID || catalog.EmbeddingText(x) != catalog.EmbeddingText(y) {
			return false
		}
	}

	return true
}

func (s *Service) publish(snap *snapshot) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.current.Store(snap)
}

func newSnapshot(cat *catalog.Catalog, store *vectorstore.Store, origin string) *snapshot {
	norms := make([]float64, store.Len())
	for i := range norms {
		norms[i] = norm(store.At(i))
	}

	return &snapshot{
		catalog: cat,
		store:   store,
		norms:   norms,
		origin:  origin,
		builtAt: time.Now(),
	}
}

func (s *Service) embedMany(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.EmbedTimeout)
	defer cancel()

	vectors, err := s.embedder.EmbedMany(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return vectors, nil
}

func (s *Service) embedOne(ctx context.Context, text string) ([]float32, error) {
	return s.embedWith(ctx, text, s.embedder.Embed)
}

// like embedOne, but search text is not remembered by a caching embedder
func (s *Service) embedQuery(ctx context.Context, text string) ([]float32, error) {
	if q, ok := s.embedder.(QueryEmbedder); ok {
		return s.embedWith(ctx, text, q.EmbedQuery)
	}

	return s.embedOne(ctx, text)
}

func (s *Service) embedWith(ctx context.Context, text string, embed func(context.Context, string) ([]float32, error)) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.EmbedTimeout)
	defer cancel()

	vector, err := embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if len(vector) != s.cfg.Dimensions {
		return nil, fmt.Errorf("%w: embedding has length %d, want %d", ErrDimensionMismatch, len(vector), s.cfg.Dimensions)
	}

	return vector, nil
}

func (s *Service) save(ctx context.Context, store *vectorstore.Store) error {
	if s.cfg.IndexPath == "" {
		return nil
	}

	seq := s.saveSeq.Add(1)

	// a save that outlives PersistTimeout still finishes in the background;
	// its snapshot is never published, so until the next save the file may
	// hold one row more than memory and the next start rebuilds
	_, err := withTimeout(ctx, s.cfg.PersistTimeout, ErrPersistence, func() (struct{}, error) {
		return struct{}{}, s.persist(seq, store)
	})

	return err
}

// writes store unless a later save has already landed
func (s *Service) persist(seq uint64, store *vectorstore.Store) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if seq < s.savedSeq {
		return nil
	}

	if err := s.writeIndex(store, s.cfg.IndexPath); err != nil {
		return err
	}

	s.savedSeq = seq

	return nil
}

func (s *Service) load(ctx context.Context) (*vectorstore.Store, error) {
	return withTimeout(ctx, s.cfg.PersistTimeout, ErrPersistence, func() (*vectorstore.Store, error) {
		return vectorstore.Load(s.cfg.IndexPath, s.cfg.Dimensions)
	})
}
