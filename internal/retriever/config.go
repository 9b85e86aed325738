package retriever

import (
	"fmt"
	"time"

	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/metrics"
)

const (
	defaultEmbedTimeout   = 30 * time.Second
	defaultPersistTimeout = 10 * time.Second
)

// derives the service config from the application's retrieval settings
func ConfigFrom(rc config.RetrievalConfig, m *metrics.Metrics) Config {
	return Config{
		Dimensions:     rc.Dimensions,
		IndexPath:      rc.IndexPath,
		EmbedTimeout:   rc.EmbedTimeout,
		PersistTimeout: rc.PersistTimeout,
		Metrics:        m,
	}
}

func (c *Config) applyDefaults() error {
	if c.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrInvalidArgument)
	}

	if c.EmbedTimeout <= 0 {
		c.EmbedTimeout = defaultEmbedTimeout
	}

	if c.PersistTimeout <= 0 {
		c.PersistTimeout = defaultPersistTimeout
	}

	return nil
}
