package vectorstore

import "errors"

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrPersistence       = errors.New("index persistence failed")
)

// Store holds D-dimensional float32 vectors in insertion order.
// It is not safe for concurrent mutation; readers may share a Store
// once it is no longer being written.
type Store struct {
	dim  int
	data []float32
}

// one search result
type Hit struct {
	Index    int
	Distance float32
	Score    float32
}
