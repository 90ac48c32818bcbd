package dto

import (
	"ai-retirement-be/pkg/insight"
	"ai-retirement-be/pkg/plan"
	"ai-retirement-be/pkg/plancache"
)

type GeneratePlanRequest struct {
	Tier         string   `json:"tier" validate:"required,oneof=free paid"`
	FocusAreas   []string `json:"focusAreas"`
	ForceRefresh bool     `json:"forceRefresh"`
}

// GeneratePlanResponse is the documented wire shape for a successful
// generation. It is served unwrapped (no envelope): the field names are an
// external contract.
type GeneratePlanResponse struct {
	Plan       *plan.Plan           `json:"plan"`
	Cached     bool                 `json:"cached"`
	TierUsed   string               `json:"tierUsed"`
	TokensUsed int                  `json:"tokensUsed,omitempty"`
	Staleness  *plancache.Staleness `json:"staleness,omitempty"`
}

type CachedPlanResponse struct {
	Plan      *plan.Plan          `json:"plan"`
	TierUsed  string              `json:"tier_used"`
	CachedAt  string              `json:"cached_at"`
	Staleness plancache.Staleness `json:"staleness"`
}

type InsightsResponse struct {
	Insights         []insight.Insight `json:"insights"`
	ToolsWithData    []string          `json:"tools_with_data"`
	DataCompleteness int               `json:"data_completeness"`
}
