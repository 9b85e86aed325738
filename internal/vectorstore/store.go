package vectorstore

import (
	"fmt"
	"sort"
)

// creates an empty store for vectors of length dim
func New(dim int) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidArgument, dim)
	}

	return &Store{dim: dim}, nil
}

func (s *Store) Dim() int {
	return s.dim
}

func (s *Store) Len() int {
	return len(s.data) / s.dim
}

// returns the i-th vector; the slice aliases store memory and must not be modified
func (s *Store) At(i int) []float32 {
	return s.data[i*s.dim : (i+1)*s.dim : (i+1)*s.dim]
}

// replaces the store contents
func (s *Store) Build(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != s.dim {
			return fmt.Errorf("%w: vector %d has length %d, want %d", ErrDimensionMismatch, i, len(v), s.dim)
		}
	}

	data := make([]float32, 0, len(vectors)*s.dim)
	for _, v := range vectors {
		data = append(data, v...)
	}

	s.data = data

	return nil
}

// appends one vector and returns its index
func (s *Store) Add(vector []float32) (int, error) {
	if len(vector) != s.dim {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), s.dim)
	}

	idx := s.Len()
	s.data = append(s.data, vector...)

	return idx, nil
}

// returns an independent copy
func (s *Store) Clone() *Store {
	data := make([]float32, len(s.data))
	copy(data, s.data)

	return &Store{dim: s.dim, data: data}
}

// returns the k nearest vectors by squared euclidean distance
func (s *Store) Search(query []float32, k int) ([]Hit, error) {
	return s.SearchFunc(query, k, nil)
}

// like Search, but only indices accepted by keep are candidates (nil keeps all)
func (s *Store) SearchFunc(query []float32, k int, keep func(i int) bool) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	}

	if len(query) != s.dim {
		return nil, fmt.Errorf("%w: query has length %d, want %d", ErrDimensionMismatch, len(query), s.dim)
	}

	n := s.Len()
	hits := make([]Hit, 0, n)

	for i := 0; i < n; i++ {
		if keep != nil && !keep(i) {
			continue
		}

		d := squaredL2(query, s.At(i))
		hits = append(hits, Hit{Index: i, Distance: d, Score: 1 / (1 + d)})
	}

	// stable sort on distance keeps lower indices first on ties
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	return hits, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32

	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}
