package config

import "time"

type Config struct {
	OpenAIKey     string
	AnthropicKey  string
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	Environment   string
	Port          string
	CORSOrigins   []string
	RateLimit     string
	OAuthCallback string
	Retrieval     RetrievalConfig
}

// settings for the in-process retrieval index
type RetrievalConfig struct {
	CatalogSource      string        `yaml:"catalog_source"`
	CatalogCSVPath     string        `yaml:"catalog_csv_path"`
	IndexPath          string        `yaml:"index_path"`
	EmbeddingCachePath string        `yaml:"embedding_cache_path"`
	Dimensions         int           `yaml:"dimensions"`
	BatchSize          int           `yaml:"batch_size"`
	Concurrency        int           `yaml:"concurrency"`
	EmbedTimeout       time.Duration `yaml:"embed_timeout"`
	PersistTimeout     time.Duration `yaml:"persist_timeout"`
}

// indexer CLI options
type Flags struct {
	CSVPath   string
	IndexPath string
	Clear     bool
	Quiet     bool
}

const (
	CatalogSourceCSV      = "csv"
	CatalogSourcePostgres = "postgres"
)

const (
	defaultPort           = "8080"
	defaultRateLimit      = "30-M"
	defaultCSVPath        = "./data/leetcode_dataset.csv"
	defaultIndexPath      = "./data/questions.ipvx"
	defaultCachePath      = "./data/embeddings.db"
	defaultDimensions     = 384
	defaultBatchSize      = 64
	defaultConcurrency    = 4
	defaultEmbedTimeout   = 30 * time.Second
	defaultPersistTimeout = 10 * time.Second
)
