package retriever

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
)

// attribute-only filtering in load order; limit 0 returns every match
func (s *Service) FilterQuestions(ctx context.Context, filter catalog.Filter, limit int) (items []catalog.Item, err error) {
	defer func(start time.Time) { s.observe("filter", start, err) }(time.Now())

	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return snap.catalog.Filter(filter, limit)
}

func (s *Service) GetByID(ctx context.Context, id int64) (catalog.Item, error) {
	snap, err := s.acquire(ctx)
	if err != nil {
		return catalog.Item{}, err
	}

	return snap.catalog.GetByID(id)
}

func (s *Service) Random(ctx context.Context, filter catalog.Filter) (catalog.Item, error) {
	snap, err := s.acquire(ctx)
	if err != nil {
		return catalog.Item{}, err
	}

	return snap.catalog.Random(filter)
}

// top n items by cosine similarity to text, restricted to filter
func (s *Service) FindSimilar(ctx context.Context, text string, n int, filter catalog.Filter) (matches []Match, err error) {
	defer func(start time.Time) { s.observe("find_similar", start, err) }(time.Now())

	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}

	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	query, err := s.embedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	return rank(snap, query, n, filter, -1), nil
}

// like FindSimilar, querying with the item's own title and content; the
// item itself is never part of the result
func (s *Service) FindSimilarToItem(ctx context.Context, id int64, n int, filter catalog.Filter) (matches []Match, err error) {
	defer func(start time.Time) { s.observe("find_similar_to_item", start, err) }(time.Now())

	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}

	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	item, err := snap.catalog.GetByID(id)
	if err != nil {
		return nil, err
	}

	self, _ := snap.catalog.IndexOf(id)

	query, err := s.embedQuery(ctx, catalog.QueryText(item))
	if err != nil {
		return nil, err
	}

	return rank(snap, query, n, filter, self), nil
}

// raw nearest-neighbour search over the store: squared euclidean distance,
// score 1/(1+d)
func (s *Service) SearchNearest(ctx context.Context, text string, k int) (neighbors []Neighbor, err error) {
	defer func(start time.Time) { s.observe("search_nearest", start, err) }(time.Now())

	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	}

	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	query, err := s.embedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	hits, err := snap.store.Search(query, k)
	if err != nil {
		return nil, err
	}

	neighbors = make([]Neighbor, len(hits))
	for i, h := range hits {
		neighbors[i] = Neighbor{
			Item:     snap.catalog.At(h.Index),
			Distance: h.Distance,
			Score:    h.Score,
		}
	}

	return neighbors, nil
}

// scores candidates by cosine similarity; exclude < 0 excludes nothing
func rank(snap *snapshot, query []float32, n int, filter catalog.Filter, exclude int) []Match {
	qNorm := norm(query)

	var rows []int
	if filter.IsZero() {
		rows = make([]int, snap.catalog.Len())
		for i := range rows {
			rows[i] = i
		}
	} else {
		rows = snap.catalog.Matching(filter)
	}

	candidates := make([]scored, 0, len(rows))

	for _, i := range rows {
		if i == exclude {
			continue
		}

		candidates = append(candidates, scored{
			index: i,
			score: cosine(query, qNorm, snap.store.At(i), snap.norms[i]),
		})
	}

	top := topN(candidates, n)

	matches := make([]Match, len(top))
	for i, c := range top {
		matches[i] = Match{Item: snap.catalog.At(c.index), SimilarityScore: c.score}
	}

	return matches
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.cfg.Metrics.ObserveRetrieval(op, err, time.Since(start))
}
