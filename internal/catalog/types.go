package catalog

import (
	"context"
	"errors"
)

var (
	ErrSourceNotFound  = errors.New("catalog source not found")
	ErrSchema          = errors.New("catalog schema error")
	ErrNotFound        = errors.New("item not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// one retrievable question
type Item struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Company    string `json:"company,omitempty"`
	Content    string `json:"content"`
}

// attribute filter; empty fields are wildcards
type Filter struct {
	Topic      string `form:"topic" json:"topic,omitempty"`
	Difficulty string `form:"difficulty" json:"difficulty,omitempty"`
	Company    string `form:"company" json:"company,omitempty"`
}

// tabular item source
type Source interface {
	Read(ctx context.Context) ([]Item, error)
}

// Catalog is an immutable, ordered list of items. Mutating operations
// return a new Catalog so readers holding the old one are unaffected.
type Catalog struct {
	items []Item
	byID  map[int64]int
}
