package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/internal/storage"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Import the dataset CSV into the questions table with embeddings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return importCatalog(cmd.Context())
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&flags.Clear, "clear", false, "delete existing questions first")
}

// upserts every CSV row, keeping its id, with an embedding of its index text
func importCatalog(ctx context.Context) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	items, err := catalog.CSVSource{Path: flags.CSVPath}.Read(ctx)
	if err != nil {
		return err
	}

	logger.Info("loaded dataset", "path", flags.CSVPath, "items", len(items))

	db, err := storage.NewClient(ctx, databaseURL)
	if err != nil {
		return err
	}

	defer db.Close()

	if flags.Clear {
		logger.Info("clearing existing questions")

		if err := db.ClearAllQuestions(ctx); err != nil {
			return err
		}
	}

	if len(items) == 0 {
		logger.Warn("dataset is empty, nothing to import")
		return nil
	}

	emb, err := newEmbedder(ctx, "Embedding questions")
	if err != nil {
		return err
	}

	defer emb.Close() //nolint:errcheck // cache close on exit

	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = catalog.EmbeddingText(it)
	}

	vectors, err := emb.EmbedMany(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed questions: %w", err)
	}

	if err := db.ImportQuestions(ctx, items, vectors); err != nil {
		return err
	}

	count, err := db.QuestionCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify question count: %w", err)
	}

	logger.Info("imported dataset", "imported", len(items), "total_questions", count)

	return nil
}
