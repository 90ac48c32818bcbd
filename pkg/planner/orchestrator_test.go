package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-retirement-be/pkg/llm"
	"ai-retirement-be/pkg/plancache"
	"ai-retirement-be/pkg/tooldata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanJSON = `{"executive_summary":"ok","retirement_readiness_score":70,"sections":[]}`

type stubStore struct {
	raw map[string]tooldata.RawToolRecord
	err error
}

func (s *stubStore) Load(_ context.Context, _ string) (map[string]tooldata.RawToolRecord, error) {
	return s.raw, s.err
}

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResult{Text: p.text, ModelUsed: p.name + "-model", TokensUsed: 1234}, nil
}

type stubRemote struct {
	saved *plancache.CachedPlan
	fail  bool
}

func (r *stubRemote) LoadPlan(_ context.Context, _ string) (*plancache.CachedPlan, error) {
	return nil, nil
}

func (r *stubRemote) SavePlan(_ context.Context, cached *plancache.CachedPlan) error {
	if r.fail {
		return errors.New("store down")
	}
	r.saved = cached
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

func storeWithData() *stubStore {
	return &stubStore{raw: map[string]tooldata.RawToolRecord{
		tooldata.ToolIncome: {
			Data:      map[string]interface{}{"totalIncome": 85000.0, "expectedExpenses": 72000.0},
			CreatedAt: time.Now(),
		},
		tooldata.ToolTax: {
			Data:      map[string]interface{}{"state": "CA", "effectiveTaxRate": 9.3},
			CreatedAt: time.Now(),
		},
	}}
}

func newTestOrchestrator(store ToolStore, remote plancache.RemoteStore, gemini, anthropic llm.Provider) *Orchestrator {
	return NewOrchestrator(store, plancache.NewManager(remote), gemini, anthropic, nopLogger{})
}

func TestGenerateNoData(t *testing.T) {
	o := newTestOrchestrator(
		&stubStore{raw: map[string]tooldata.RawToolRecord{}},
		&stubRemote{},
		&stubProvider{name: llm.ProviderGemini, text: validPlanJSON},
		nil,
	)

	_, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierFree})

	var noData *NoDataError
	require.ErrorAs(t, err, &noData)
	require.Len(t, noData.Suggestions, 3)
	assert.Equal(t, tooldata.ToolIncome, noData.Suggestions[0].ToolId)
	assert.Equal(t, tooldata.ToolSocialSecurity, noData.Suggestions[1].ToolId)
	assert.Equal(t, tooldata.ToolTax, noData.Suggestions[2].ToolId)
}

func TestGenerateNoProvider(t *testing.T) {
	o := newTestOrchestrator(storeWithData(), &stubRemote{}, nil, nil)

	_, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierPaid})

	var noProvider *NoProviderError
	require.ErrorAs(t, err, &noProvider)
}

func TestGenerateSuccessFreeTier(t *testing.T) {
	gemini := &stubProvider{name: llm.ProviderGemini, text: "```json\n" + validPlanJSON + "\n```"}
	remote := &stubRemote{}
	o := newTestOrchestrator(storeWithData(), remote, gemini, nil)

	res, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierFree})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, plancache.TierFree, res.TierUsed)
	assert.Equal(t, 1234, res.TokensUsed)
	assert.NotEmpty(t, res.Plan.Id)
	assert.Equal(t, "gemini-model", res.Plan.ModelUsed)
	assert.Equal(t, 17, res.Plan.DataCompleteness)
	assert.Equal(t, []string{tooldata.ToolIncome, tooldata.ToolTax}, res.Plan.ToolsAnalyzed)

	require.NotNil(t, remote.saved, "plan not written through to the durable tier")
	assert.Equal(t, "u", remote.saved.UserId)
	assert.NotEmpty(t, remote.saved.DataSignature)
	assert.Equal(t, plancache.TierFree, remote.saved.TierUsed)
}

func TestGeneratePaidPrefersAnthropic(t *testing.T) {
	gemini := &stubProvider{name: llm.ProviderGemini, text: validPlanJSON}
	anthropic := &stubProvider{name: llm.ProviderAnthropic, text: validPlanJSON}
	o := newTestOrchestrator(storeWithData(), &stubRemote{}, gemini, anthropic)

	res, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierPaid})
	require.NoError(t, err)

	assert.Equal(t, plancache.TierPaid, res.TierUsed)
	assert.Equal(t, 1, anthropic.calls)
	assert.Equal(t, 0, gemini.calls)
}

func TestGenerateAuthDowngrade(t *testing.T) {
	authErr := llm.NewProviderError(llm.ProviderAnthropic, "claude", llm.KindAuth, 401, errors.New("bad key"))
	gemini := &stubProvider{name: llm.ProviderGemini, text: validPlanJSON}
	anthropic := &stubProvider{name: llm.ProviderAnthropic, err: authErr}
	o := newTestOrchestrator(storeWithData(), &stubRemote{}, gemini, anthropic)

	res, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierPaid})
	require.NoError(t, err)

	assert.Equal(t, plancache.TierFree, res.TierUsed, "auth downgrade must report the tier actually served")
	assert.Equal(t, 1, anthropic.calls)
	assert.Equal(t, 1, gemini.calls)
}

func TestGenerateNoDowngradeOnRateLimit(t *testing.T) {
	rateErr := llm.NewProviderError(llm.ProviderAnthropic, "claude", llm.KindRateLimit, 429, errors.New("slow down"))
	gemini := &stubProvider{name: llm.ProviderGemini, text: validPlanJSON}
	anthropic := &stubProvider{name: llm.ProviderAnthropic, err: rateErr}
	o := newTestOrchestrator(storeWithData(), &stubRemote{}, gemini, anthropic)

	_, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierPaid})

	var callErr *ProviderCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, llm.KindRateLimit, callErr.Kind)
	assert.Equal(t, "claude", callErr.Model)
	assert.Equal(t, 0, gemini.calls, "rate limits must not trigger a cross-provider retry")
}

func TestGenerateParseFailureNeverRetries(t *testing.T) {
	gemini := &stubProvider{name: llm.ProviderGemini, text: "I cannot produce JSON today."}
	o := newTestOrchestrator(storeWithData(), &stubRemote{}, gemini, nil)

	_, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierFree})

	var parseErr *PlanParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, gemini.calls, "a parse failure must not re-call the model")
}

func TestGenerateCacheWriteFailureNonFatal(t *testing.T) {
	gemini := &stubProvider{name: llm.ProviderGemini, text: validPlanJSON}
	o := newTestOrchestrator(storeWithData(), &stubRemote{fail: true}, gemini, nil)

	res, err := o.Generate(context.Background(), GenerateInput{UserId: "u", Tier: plancache.TierFree})

	require.NoError(t, err, "a cache write failure must not fail the generation")
	assert.NotNil(t, res.Plan)
}
