package llm

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultAnthropicModel  = "claude-sonnet-4-20250514"
	defaultOpenAIChatModel = "gpt-4o-mini"
	defaultEmbeddingModel  = "text-embedding-3-small"
	defaultEmbeddingDim    = 384
	defaultGeneratorTokens = 2048
	defaultGeneratorTemp   = float32(0.7)
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")

	// generator defaults to anthropic when a key is present, openai chat otherwise
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderOpenAI
		if anthropicKey != "" {
			generatorProvider = ProviderAnthropic
		}
	}

	generatorAPIKey := keyFor(generatorProvider, openaiKey, anthropicKey)
	if generatorAPIKey == "" {
		return nil, fmt.Errorf("no API key configured for generator provider %s", generatorProvider)
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		generatorModel = defaultAnthropicModel
		if generatorProvider == ProviderOpenAI {
			generatorModel = defaultOpenAIChatModel
		}
	}

	// embedder configuration
	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOpenAI // default
	}

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = defaultEmbeddingModel
	}

	embedderDimensions := defaultEmbeddingDim
	if dimStr := os.Getenv("EMBEDDING_DIMENSIONS"); dimStr != "" {
		if val, err := strconv.Atoi(dimStr); err == nil && val > 0 {
			embedderDimensions = val
		}
	}

	// generator optional parameters
	generatorMaxTokens := defaultGeneratorTokens
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := defaultGeneratorTemp
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      generatorAPIKey,
		GeneratorModel:       generatorModel,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
		EmbedderProvider:     embedderProvider,
		EmbedderAPIKey:       openaiKey,
		EmbedderModel:        embedderModel,
		EmbedderDimensions:   embedderDimensions,
	}, nil
}
