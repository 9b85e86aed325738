package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Retrieval *RetrievalConfig `yaml:"retrieval"`
}

// merges the retrieval section of a YAML file into cfg; zero values keep defaults
func overlayFile(path string, cfg *RetrievalConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Retrieval == nil {
		return nil
	}

	r := fc.Retrieval

	if r.CatalogSource != "" {
		cfg.CatalogSource = r.CatalogSource
	}

	if r.CatalogCSVPath != "" {
		cfg.CatalogCSVPath = r.CatalogCSVPath
	}

	if r.IndexPath != "" {
		cfg.IndexPath = r.IndexPath
	}

	if r.EmbeddingCachePath != "" {
		cfg.EmbeddingCachePath = r.EmbeddingCachePath
	}

	if r.Dimensions > 0 {
		cfg.Dimensions = r.Dimensions
	}

	if r.BatchSize > 0 {
		cfg.BatchSize = r.BatchSize
	}

	if r.Concurrency > 0 {
		cfg.Concurrency = r.Concurrency
	}

	if r.EmbedTimeout > 0 {
		cfg.EmbedTimeout = r.EmbedTimeout
	}

	if r.PersistTimeout > 0 {
		cfg.PersistTimeout = r.PersistTimeout
	}

	return nil
}
