package storage

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// deletes every question along with dependent favorites, submissions and history
func (c *Client) ClearAllQuestions(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, deleteAllQuestionsQuery)
	if err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	return nil
}

// upserts catalog items and their embeddings in a single transaction,
// keeping the items' ids
func (c *Client) ImportQuestions(ctx context.Context, items []catalog.Item, embeddings [][]float32) error {
	if len(items) != len(embeddings) {
		return fmt.Errorf("items and embeddings length mismatch")
	}

	if len(items) == 0 {
		return nil
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for i, item := range items {
		batch.Queue(upsertQuestionQuery,
			item.ID,
			item.Title,
			item.Topic,
			item.Difficulty,
			item.Company,
			item.Content,
			pgvector.NewVector(embeddings[i]),
		)
	}

	batch.Queue(syncQuestionSequenceQuery)

	br := tx.SendBatch(ctx, batch)

	for i := range len(items) + 1 {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to import question %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns the total number of questions in the database
func (c *Client) QuestionCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getQuestionCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get question count: %w", err)
	}

	return count, nil
}
