package insight

// Priority levels for detected opportunities.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// priorityRank orders priorities for sorting (higher = more urgent).
var priorityRank = map[string]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Insight is one detected, quantified cross-tool optimization opportunity.
// PotentialImpact is in currency units and is never negative.
type Insight struct {
	Id              string   `json:"id"`
	Priority        string   `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PotentialImpact float64  `json:"potential_impact"`
	RelatedTools    []string `json:"related_tools"`
}
