package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// reads every item from source and builds a catalog in source order
func Load(ctx context.Context, source Source) (*Catalog, error) {
	items, err := source.Read(ctx)
	if err != nil {
		return nil, err
	}

	return New(items)
}

// builds a catalog from items; ids must be unique
func New(items []Item) (*Catalog, error) {
	byID := make(map[int64]int, len(items))

	for i, it := range items {
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrSchema, it.ID)
		}

		byID[it.ID] = i
	}

	return &Catalog{items: items, byID: byID}, nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) At(i int) Item {
	return c.items[i]
}

// returns a copy of all items in load order
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)

	return out
}

// returns the row index of id
func (c *Catalog) IndexOf(id int64) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

func (c *Catalog) GetByID(id int64) (Item, error) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return c.items[i], nil
}

// returns matching items in load order; limit 0 means all
func (c *Catalog) Filter(f Filter, limit int) ([]Item, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, limit)
	}

	m := f.matcher()
	out := make([]Item, 0)

	for _, it := range c.items {
		if !m.match(it) {
			continue
		}

		out = append(out, it)

		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

// returns the row indices that match f, ascending
func (c *Catalog) Matching(f Filter) []int {
	m := f.matcher()
	out := make([]int, 0)

	for i, it := range c.items {
		if m.match(it) {
			out = append(out, i)
		}
	}

	return out
}

// returns one uniformly random item from the filtered subset
func (c *Catalog) Random(f Filter) (Item, error) {
	rows := c.Matching(f)
	if len(rows) == 0 {
		return Item{}, fmt.Errorf("%w: no items match filter", ErrNotFound)
	}

	return c.items[rows[rand.IntN(len(rows))]], nil //nolint:gosec // not security sensitive
}

// returns a new catalog with item appended
func (c *Catalog) Append(item Item) (*Catalog, error) {
	if _, dup := c.byID[item.ID]; dup {
		return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidArgument, item.ID)
	}

	items := make([]Item, len(c.items), len(c.items)+1)
	copy(items, c.items)
	items = append(items, item)

	byID := make(map[int64]int, len(items))
	for k, v := range c.byID {
		byID[k] = v
	}

	byID[item.ID] = len(items) - 1

	return &Catalog{items: items, byID: byID}, nil
}

// reports whether the filter constrains anything
func (f Filter) IsZero() bool {
	return f.Topic == "" && f.Difficulty == "" && f.Company == ""
}

type matcher struct {
	topic      string
	difficulty string
	company    string
}

func (f Filter) matcher() matcher {
	return matcher{
		topic:      strings.ToLower(strings.TrimSpace(f.Topic)),
		difficulty: strings.ToLower(strings.TrimSpace(f.Difficulty)),
		company:    strings.ToLower(strings.TrimSpace(f.Company)),
	}
}

func (m matcher) match(it Item) bool {
	if m.topic != "" && strings.ToLower(it.Topic) != m.topic {
		return false
	}

	if m.difficulty != "" && strings.ToLower(it.Difficulty) != m.difficulty {
		return false
	}

	if m.company != "" && !strings.Contains(strings.ToLower(it.Company), m.company) {
		return false
	}

	return true
}
