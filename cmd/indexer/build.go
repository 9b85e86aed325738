package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/internal/retriever"
	"codeberg.org/interprep/server/internal/storage"
	"github.com/spf13/cobra"
)

var (
	force  bool
	source string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the persisted vector index from the catalog source",
	Long: `build loads the catalog, embeds every row and writes the index file.
An existing index that still matches the catalog is kept unless --force is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildIndex(cmd.Context())
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Import the dataset, then rebuild the index from Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := importCatalog(cmd.Context()); err != nil {
			return err
		}

		source = config.CatalogSourcePostgres
		force = true

		return buildIndex(cmd.Context())
	},
}

func init() {
	buildCmd.Flags().BoolVar(&force, "force", false, "discard an existing index file")
	buildCmd.Flags().StringVar(&source, "source", "", "catalog source: csv or postgres (default from CATALOG_SOURCE)")
	allCmd.Flags().BoolVar(&flags.Clear, "clear", false, "delete existing questions first")
}

func buildIndex(ctx context.Context) error {
	if source == "" {
		source = retrieval.CatalogSource
	}

	src, closeSource, err := openSource(ctx, source)
	if err != nil {
		return err
	}

	defer closeSource()

	if force {
		if err := os.Remove(flags.IndexPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove existing index: %w", err)
		}
	}

	emb, err := newEmbedder(ctx, "Building index")
	if err != nil {
		return err
	}

	defer emb.Close() //nolint:errcheck // cache close on exit

	rc := retrieval
	rc.IndexPath = flags.IndexPath

	svc, err := retriever.New(retriever.ConfigFrom(rc, nil), src, emb)
	if err != nil {
		return err
	}

	start := time.Now()

	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	stats := svc.Stats()
	logger.Info("index ready",
		"path", flags.IndexPath,
		"items", stats.Items,
		"dimensions", stats.Dimensions,
		"origin", stats.Origin,
		"duration", time.Since(start),
	)

	return nil
}

func openSource(ctx context.Context, name string) (catalog.Source, func(), error) {
	switch name {
	case config.CatalogSourceCSV:
		return catalog.CSVSource{Path: flags.CSVPath}, func() {}, nil
	case config.CatalogSourcePostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL environment variable is required")
		}

		db, err := storage.NewClient(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}

		return catalog.PostgresSource{Pool: db.Pool()}, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", name)
	}
}
