package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loads .env into the process environment if present
func LoadDotEnv() {
	// production environments may not have a .env file
	_ = godotenv.Load() //nolint:errcheck
}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	LoadDotEnv()

	openaiKey := os.Getenv("OPENAI_API_KEY")
	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	retrieval, err := LoadRetrievalConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		OpenAIKey:     openaiKey,
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		DatabaseURL:   databaseURL,
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     jwtSecret,
		Environment:   environment,
		Port:          envOr("PORT", defaultPort),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		RateLimit:     envOr("RATE_LIMIT", defaultRateLimit),
		OAuthCallback: os.Getenv("OAUTH_CALLBACK_URL"),
		Retrieval:     *retrieval,
	}, nil
}

// loads retrieval settings: defaults, then CONFIG_FILE overlay, then env overrides
func LoadRetrievalConfig() (*RetrievalConfig, error) {
	cfg := DefaultRetrievalConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.CatalogSource = strings.ToLower(v)
	}

	if v := os.Getenv("CATALOG_CSV_PATH"); v != "" {
		cfg.CatalogCSVPath = v
	}

	if v := os.Getenv("INDEX_PATH"); v != "" {
		cfg.IndexPath = v
	}

	if v, ok := os.LookupEnv("EMBEDDING_CACHE_PATH"); ok {
		cfg.EmbeddingCachePath = v
	}

	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be a positive integer, got %q", v)
		}

		cfg.Dimensions = n
	}

	if v := os.Getenv("EMBED_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EMBED_TIMEOUT: %w", err)
		}

		cfg.EmbedTimeout = d
	}

	if v := os.Getenv("PERSIST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PERSIST_TIMEOUT: %w", err)
		}

		cfg.PersistTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// returns the built-in retrieval defaults
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		CatalogSource:      CatalogSourceCSV,
		CatalogCSVPath:     defaultCSVPath,
		IndexPath:          defaultIndexPath,
		EmbeddingCachePath: defaultCachePath,
		Dimensions:         defaultDimensions,
		BatchSize:          defaultBatchSize,
		Concurrency:        defaultConcurrency,
		EmbedTimeout:       defaultEmbedTimeout,
		PersistTimeout:     defaultPersistTimeout,
	}
}

// checks the retrieval settings for obviously broken values
func (c RetrievalConfig) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceCSV, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", c.CatalogSource)
	}

	if c.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive")
	}

	if c.BatchSize <= 0 || c.Concurrency <= 0 {
		return fmt.Errorf("batch size and concurrency must be positive")
	}

	if c.EmbedTimeout <= 0 || c.PersistTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string

	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
