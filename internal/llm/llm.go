package llm

import (
	"context"
	"fmt"
)

// combines an Embedder and a TextGenerator into a single LLM
type CompositeLLM struct {
	Embedder
	TextGenerator
}

// both embedded interfaces declare Model; report the generator's
func (c *CompositeLLM) Model() string {
	return c.TextGenerator.Model()
}

// creates a new LLM with auto-configuration from environment variables
func NewLLM(ctx context.Context) (*CompositeLLM, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(ctx, config)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(_ context.Context, config *Config) (*CompositeLLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// create generator based on provider
	var textGenerator TextGenerator

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		textGenerator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	case ProviderOpenAI:
		textGenerator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	// create embedder based on provider
	var embedder Embedder

	switch config.EmbedderProvider {
	case ProviderOpenAI:
		embedder = NewOpenAIEmbedder(OpenAIConfig{
			APIKey:     config.EmbedderAPIKey,
			Model:      config.EmbedderModel,
			Dimensions: config.EmbedderDimensions,
		})
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}

	return &CompositeLLM{
		Embedder:      embedder,
		TextGenerator: textGenerator,
	}, nil
}
