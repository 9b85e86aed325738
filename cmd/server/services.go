package main

import (
	"context"
	"fmt"

	"codeberg.org/interprep/server/api/rest/questions"
	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/embedder"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/metrics"
	"codeberg.org/interprep/server/internal/retriever"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures all service clients; the retrieval index is built
// later by Initialize
func InitializeServices(cfg *config.Config, db *pgxpool.Pool, m *metrics.Metrics) (*Services, error) {
	llmClient, err := llm.NewLLMWithConfig(context.Background(), llm.ConfigFromApp(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	rc := cfg.Retrieval

	var cache embedder.Cache
	if rc.EmbeddingCachePath != "" {
		bolt, err := embedder.OpenBoltCache(rc.EmbeddingCachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}

		cache = bolt
	}

	embedClient := embedder.New(llmClient.Embedder, embedder.Options{
		BatchSize:   rc.BatchSize,
		Concurrency: rc.Concurrency,
		Cache:       cache,
		Metrics:     m,
	})

	source, err := catalogSource(rc, db)
	if err != nil {
		embedClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, err
	}

	retrieverService, err := retriever.New(retriever.ConfigFrom(rc, m), source, embedClient)
	if err != nil {
		embedClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to create retrieval service: %w", err)
	}

	return &Services{
		LLM:       llmClient,
		Embedder:  embedClient,
		Retriever: retrieverService,
		Generator: generator.New(llmClient, m),
	}, nil
}

func catalogSource(rc config.RetrievalConfig, db *pgxpool.Pool) (catalog.Source, error) {
	switch rc.CatalogSource {
	case config.CatalogSourcePostgres:
		return catalog.PostgresSource{Pool: db}, nil
	case config.CatalogSourceCSV:
		return catalog.CSVSource{Path: rc.CatalogCSVPath}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", rc.CatalogSource)
	}
}

// generated questions only live in postgres, so they join the live index
// only when the index is built from postgres too
func questionIndexer(rc config.RetrievalConfig, r *retriever.Service) questions.Indexer {
	if rc.CatalogSource != config.CatalogSourcePostgres || r == nil {
		return nil
	}

	return r
}
