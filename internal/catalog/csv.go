package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// reads items from a CSV file with a header row
type CSVSource struct {
	Path string
}

var requiredColumns = []string{"title", "topic", "difficulty", "content"}

func (s CSVSource) Read(ctx context.Context) ([]Item, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}

		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(ctx, f)
}

// parses CSV rows from r; columns are matched case-insensitively
func ReadCSV(ctx context.Context, r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrSchema)
		}

		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}

	idCol, hasID := cols["id"]
	companyCol, hasCompany := cols["company"]

	field := func(rec []string, col int) string {
		if col < len(rec) {
			return strings.TrimSpace(rec[col])
		}

		return ""
	}

	var items []Item
	seen := make(map[int64]int)

	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSchema, row, err)
		}

		id := int64(row)
		if hasID {
			raw := field(rec, idCol)

			id, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: malformed id %q", ErrSchema, row, raw)
			}
		}

		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: rows %d and %d share id %d", ErrSchema, prev, row, id)
		}

		seen[id] = row

		it := Item{
			ID:         id,
			Title:      field(rec, cols["title"]),
			Topic:      field(rec, cols["topic"]),
			Difficulty: field(rec, cols["difficulty"]),
			Content:    field(rec, cols["content"]),
		}

		if hasCompany {
			it.Company = field(rec, companyCol)
		}

		items = append(items, it)
	}

	return items, nil
}
