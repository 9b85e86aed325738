package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/embedder"
	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flags     config.Flags
	retrieval config.RetrievalConfig
)

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Import the question dataset and build the search index",
	Long: `indexer loads the question dataset into Postgres and builds the
vector index file the server loads at start-up.

Examples:
  indexer catalog --csv ./data/leetcode_dataset.csv --clear
  indexer build --force
  indexer all --clear`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rc, err := config.LoadRetrievalConfig()
		if err != nil {
			return fmt.Errorf("invalid retrieval config: %w", err)
		}

		retrieval = *rc

		if flags.Quiet {
			logger.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		}

		return nil
	},
}

func init() {
	// defaults may come from .env
	config.LoadDotEnv()
	flags = config.DefaultIndexerFlags()

	rootCmd.PersistentFlags().StringVar(&flags.CSVPath, "csv", flags.CSVPath, "dataset CSV file")
	rootCmd.PersistentFlags().StringVar(&flags.IndexPath, "index", flags.IndexPath, "vector index file")
	rootCmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress log output")

	rootCmd.AddCommand(catalogCmd, buildCmd, allCmd)
}

// opens the embedding client with the bolt cache and a progress bar
func newEmbedder(ctx context.Context, description string) (*embedder.Client, error) {
	llmClient, err := llm.NewLLM(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	opts := embedder.Options{
		BatchSize:   retrieval.BatchSize,
		Concurrency: retrieval.Concurrency,
		Progress:    newProgress(description),
	}

	if retrieval.EmbeddingCachePath != "" {
		cache, err := embedder.OpenBoltCache(retrieval.EmbeddingCachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}

		opts.Cache = cache
	}

	return embedder.New(llmClient.Embedder, opts), nil
}
