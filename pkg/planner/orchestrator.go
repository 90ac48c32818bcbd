package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-retirement-be/pkg/insight"
	"ai-retirement-be/pkg/llm"
	"ai-retirement-be/pkg/plan"
	"ai-retirement-be/pkg/plancache"
	"ai-retirement-be/pkg/tooldata"

	"github.com/google/uuid"
)

// ToolStore supplies the user's raw tool records. Absence of records is an
// empty map, never an error.
type ToolStore interface {
	Load(ctx context.Context, userId string) (map[string]tooldata.RawToolRecord, error)
}

// Logger is the slice of the application logger the orchestrator needs.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

const logModule = "PLANNER"

// GenerateInput is one plan-generation request. AuthToken is opaque to the
// core; it identifies the caller to collaborators that require it.
type GenerateInput struct {
	UserId     string
	AuthToken  string
	Tier       string
	FocusAreas []string
}

// GenerateResult is the success shape of a generation call.
type GenerateResult struct {
	Plan       *plan.Plan
	Cached     bool
	TierUsed   string
	TokensUsed int
}

const (
	generationMaxTokens   = 8192
	generationTemperature = 0.4
)

// Orchestrator runs the full pipeline: fetch, analyze, provider call with
// fallback, parse, cache. Providers are nil when their credential is absent;
// credential presence is decided at construction, never via ambient lookups.
type Orchestrator struct {
	store     ToolStore
	cache     *plancache.Manager
	gemini    llm.Provider
	anthropic llm.Provider
	logger    Logger
	now       func() time.Time
}

func NewOrchestrator(store ToolStore, cache *plancache.Manager, geminiProvider, anthropicProvider llm.Provider, logger Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		cache:     cache,
		gemini:    geminiProvider,
		anthropic: anthropicProvider,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate always produces a fresh plan; serving a cached one is the caller's
// decision. Steps run strictly sequentially: each depends on the previous and
// the provider call dominates latency anyway.
func (o *Orchestrator) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	// 1. Fetch
	raw, err := o.store.Load(ctx, input.UserId)
	if err != nil {
		return nil, fmt.Errorf("load tool data: %w", err)
	}

	// 2. Analyze (pure, exception-contained)
	snapshot := tooldata.Normalize(raw)
	if len(snapshot.ToolsWithData) == 0 {
		return nil, &NoDataError{Suggestions: DefaultSuggestions()}
	}
	insights := insight.Analyze(snapshot)

	o.logger.Info(logModule, "Generating plan", map[string]interface{}{
		"user_id":      input.UserId,
		"tier":         input.Tier,
		"tools":        len(snapshot.ToolsWithData),
		"completeness": snapshot.DataCompleteness,
		"insights":     len(insights),
	})

	// 3+4. Select provider and call with fallback
	prompt := NewPromptBuilder(snapshot, insights, input.FocusAreas).Build()
	result, tierUsed, err := o.callWithFallback(ctx, input.Tier, prompt)
	if err != nil {
		return nil, err
	}

	// 5. Parse
	parsed, err := ParsePlan(result.Text)
	if err != nil {
		// Never re-call the model here: a systematic prompt/schema mismatch
		// must surface instead of silently burning generation calls.
		return nil, err
	}

	parsed.Id = uuid.NewString()
	parsed.GeneratedAt = o.now()
	parsed.ModelUsed = result.ModelUsed
	parsed.DataCompleteness = snapshot.DataCompleteness
	parsed.ToolsAnalyzed = snapshot.ToolsWithData

	// 6. Cache (best-effort)
	signature, err := plancache.Signature(snapshot)
	if err != nil {
		o.logger.Warn(logModule, "Failed to compute data signature", map[string]interface{}{
			"user_id": input.UserId,
			"error":   err.Error(),
		})
	}

	cached := &plancache.CachedPlan{
		UserId:        input.UserId,
		Plan:          *parsed,
		TierUsed:      tierUsed,
		TokensUsed:    result.TokensUsed,
		CachedAt:      o.now(),
		DataSignature: signature,
	}
	if err := o.cache.Store(ctx, cached); err != nil {
		cacheErr := &CacheWriteError{Err: err}
		o.logger.Error(logModule, "Plan cache write failed", map[string]interface{}{
			"user_id": input.UserId,
			"error":   cacheErr.Error(),
		})
		// Non-fatal: the generation result is still returned.
	}

	return &GenerateResult{
		Plan:       parsed,
		Cached:     false,
		TierUsed:   tierUsed,
		TokensUsed: result.TokensUsed,
	}, nil
}

// callWithFallback applies the provider policy. Tier paid prefers the
// higher-fidelity provider, free the cheaper one. A missing credential falls
// back silently; neither credential is a NoProviderError. The only
// cross-provider retry is the auth-failure downgrade from the higher-fidelity
// provider to the cheaper one.
func (o *Orchestrator) callWithFallback(ctx context.Context, tier, prompt string) (*llm.CompletionResult, string, error) {
	preferred, tierUsed := o.selectProvider(tier)
	if preferred == nil {
		return nil, "", &NoProviderError{}
	}

	result, err := o.complete(ctx, preferred, prompt)
	if err == nil {
		return result, tierUsed, nil
	}

	// Downgrade path: auth failures only, not rate limits or content errors.
	if preferred == o.anthropic && o.gemini != nil && llm.IsKind(err, llm.KindAuth) {
		o.logger.Warn(logModule, "Primary provider rejected credentials, downgrading", map[string]interface{}{
			"from": preferred.Name(),
			"to":   o.gemini.Name(),
		})
		result, err = o.complete(ctx, o.gemini, prompt)
		if err == nil {
			return result, plancache.TierFree, nil
		}
	}

	return nil, "", wrapProviderError(err)
}

func (o *Orchestrator) selectProvider(tier string) (llm.Provider, string) {
	if tier == plancache.TierPaid {
		if o.anthropic != nil {
			return o.anthropic, plancache.TierPaid
		}
		return o.gemini, plancache.TierFree
	}
	if o.gemini != nil {
		return o.gemini, plancache.TierFree
	}
	if o.anthropic != nil {
		return o.anthropic, plancache.TierPaid
	}
	return nil, ""
}

func (o *Orchestrator) complete(ctx context.Context, provider llm.Provider, prompt string) (*llm.CompletionResult, error) {
	return provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: SystemPrompt,
		UserPrompt:   prompt,
		// The gemini adapter retries without it when a model rejects JSON
		// mode; anthropic ignores it by contract of its API.
		ForceJSON:   provider.Name() == llm.ProviderGemini,
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
	})
}

func wrapProviderError(err error) error {
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		return &ProviderCallError{
			Provider: pe.Provider,
			Model:    pe.Model,
			Kind:     pe.Kind,
			Err:      err,
		}
	}
	return &ProviderCallError{Kind: llm.KindOther, Err: err}
}
