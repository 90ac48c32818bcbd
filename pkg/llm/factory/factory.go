package factory

import (
	"fmt"

	"ai-retirement-be/pkg/llm"
	"ai-retirement-be/pkg/llm/anthropic"
	"ai-retirement-be/pkg/llm/gemini"
)

// NewLLMProvider builds a single provider adapter by name.
func NewLLMProvider(providerType, apiKey, modelName string) (llm.Provider, error) {
	switch providerType {
	case llm.ProviderGemini:
		models := gemini.DefaultModels
		if modelName != "" {
			models = append([]string{modelName}, gemini.DefaultModels[1:]...)
		}
		return gemini.NewGeminiProvider(apiKey, models), nil
	case llm.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
