package llm

import "codeberg.org/interprep/server/internal/config"

// returns the appropriate API key for the given provider
func keyFor(provider Provider, openaiKey, anthropicKey string) string {
	switch provider {
	case ProviderOpenAI:
		return openaiKey
	default:
		return anthropicKey
	}
}

// builds an LLM config from the application config, using env-level defaults
// for anything the application config does not carry
func ConfigFromApp(base *config.Config) *Config {
	generatorProvider := ProviderOpenAI
	generatorModel := defaultOpenAIChatModel

	if base.AnthropicKey != "" {
		generatorProvider = ProviderAnthropic
		generatorModel = defaultAnthropicModel
	}

	dim := base.Retrieval.Dimensions
	if dim <= 0 {
		dim = defaultEmbeddingDim
	}

	return &Config{
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      keyFor(generatorProvider, base.OpenAIKey, base.AnthropicKey),
		GeneratorModel:       generatorModel,
		GeneratorMaxTokens:   defaultGeneratorTokens,
		GeneratorTemperature: defaultGeneratorTemp,
		EmbedderProvider:     ProviderOpenAI,
		EmbedderAPIKey:       base.OpenAIKey,
		EmbedderModel:        defaultEmbeddingModel,
		EmbedderDimensions:   dim,
	}
}
