package planner

import (
	"fmt"

	"ai-retirement-be/pkg/llm"
	"ai-retirement-be/pkg/plan"
	"ai-retirement-be/pkg/tooldata"
)

// NoDataError: zero tools populated. User-actionable; carries named tool
// suggestions instead of a generic message.
type NoDataError struct {
	Suggestions []plan.MissingDataSuggestion
}

func (e *NoDataError) Error() string {
	return "no tool data available to generate a plan"
}

// DefaultSuggestions is the documented starter set for empty accounts.
func DefaultSuggestions() []plan.MissingDataSuggestion {
	return []plan.MissingDataSuggestion{
		{
			ToolId: tooldata.ToolIncome,
			Tool:   "Income Estimator",
			Reason: "Income projections anchor every other recommendation in the plan.",
		},
		{
			ToolId: tooldata.ToolSocialSecurity,
			Tool:   "Social Security Optimizer",
			Reason: "Claiming age is the single largest controllable lever for guaranteed income.",
		},
		{
			ToolId: tooldata.ToolTax,
			Tool:   "Tax Analyzer",
			Reason: "Tax burden determines whether relocation and withdrawal strategies pay off.",
		},
	}
}

// NoProviderError: no credential configured for any provider. Operator-actionable.
type NoProviderError struct{}

func (e *NoProviderError) Error() string {
	return "no LLM provider credential is configured"
}

// ProviderCallError surfaces after the fallback policy is exhausted. It keeps
// the classification and the last model attempted.
type ProviderCallError struct {
	Provider string
	Model    string
	Kind     llm.ErrorKind
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s failed (model %s, %s): %v", e.Provider, e.Model, e.Kind, e.Err)
}

func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// rawPrefixLen bounds how much raw model output a parse error carries.
const rawPrefixLen = 500

// PlanParseError: the model's output did not parse as a plan. Never retried
// automatically; a systematic prompt/schema mismatch must surface, not burn
// generation calls.
type PlanParseError struct {
	RawPrefix string
	Err       error
}

func (e *PlanParseError) Error() string {
	return fmt.Sprintf("failed to parse plan from model output: %v (raw prefix: %q)", e.Err, e.RawPrefix)
}

func (e *PlanParseError) Unwrap() error {
	return e.Err
}

func newPlanParseError(raw string, err error) *PlanParseError {
	prefix := raw
	if len(prefix) > rawPrefixLen {
		prefix = prefix[:rawPrefixLen]
	}
	return &PlanParseError{RawPrefix: prefix, Err: err}
}

// CacheWriteError is non-fatal: the generated plan is still returned, the
// failure is only logged.
type CacheWriteError struct {
	Err error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("failed to persist generated plan: %v", e.Err)
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}
