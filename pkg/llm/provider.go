package llm

import (
	"context"
)

// Provider names used in config and in the generation result.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// CompletionRequest is a provider-agnostic single-turn completion.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string

	// Model overrides the provider default when set.
	Model string

	// ForceJSON asks the provider for structured-output mode where supported.
	// Adapters that cannot honor it for a given model must fail with
	// KindJSONModeUnsupported, not silently ignore it.
	ForceJSON bool

	MaxTokens   int
	Temperature float64
}

// CompletionResult carries the raw model text plus accounting fields.
type CompletionResult struct {
	Text       string
	ModelUsed  string
	TokensUsed int
}

// Provider defines the contract for any LLM backend.
// Implementations classify their own failures into an ErrorKind (errors.go)
// so callers never pattern-match vendor message strings.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}
