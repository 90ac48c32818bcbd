package plancache

import (
	"time"

	"ai-retirement-be/pkg/plan"
)

// Service tiers.
const (
	TierFree = "free"
	TierPaid = "paid"
)

// CachedPlan is the persisted generation artifact. DataSignature is the
// cache-invalidation key: a canonical hash of the snapshot the plan was
// generated from.
type CachedPlan struct {
	UserId        string    `json:"user_id"`
	Plan          plan.Plan `json:"plan"`
	TierUsed      string    `json:"tier_used"`
	TokensUsed    int       `json:"tokens_used,omitempty"`
	CachedAt      time.Time `json:"cached_at"`
	DataSignature string    `json:"data_signature"`
}

// Staleness reports, independently, why a cached plan may deserve a refresh.
// It is a presentation-level judgment; stale plans are flagged, never evicted.
type Staleness struct {
	Stale       bool `json:"stale"`
	AgeExceeded bool `json:"age_exceeded"`
	DataChanged bool `json:"data_changed"`
}

// MaxPlanAge is the age threshold beyond which a plan is flagged stale.
const MaxPlanAge = 24 * time.Hour

// CheckStaleness compares a cached plan against the current snapshot signature.
// Both reasons are evaluated and reported independently.
func CheckStaleness(cached *CachedPlan, currentSignature string, now time.Time) Staleness {
	s := Staleness{}
	if cached == nil {
		return s
	}
	if now.Sub(cached.CachedAt) > MaxPlanAge {
		s.AgeExceeded = true
	}
	if cached.DataSignature != "" && currentSignature != "" && cached.DataSignature != currentSignature {
		s.DataChanged = true
	}
	s.Stale = s.AgeExceeded || s.DataChanged
	return s
}
