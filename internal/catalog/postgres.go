package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectCatalogQuery = `
	SELECT id, title, topic, difficulty, COALESCE(company, ''), content
	FROM questions
	ORDER BY id
`

// reads items from the questions table
type PostgresSource struct {
	Pool *pgxpool.Pool
}

func (s PostgresSource) Read(ctx context.Context) ([]Item, error) {
	rows, err := s.Pool.Query(ctx, selectCatalogQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Item, error) {
		var it Item
		err := row.Scan(&it.ID, &it.Title, &it.Topic, &it.Difficulty, &it.Company, &it.Content)

		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan questions: %w", err)
	}

	return items, nil
}
