// Package plan defines the LLM-synthesized plan document. The shape doubles as
// the parser's target schema and the wire format served to consumers, so every
// array field defaults to empty rather than absent.
package plan

import "time"

// Warning severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Section is one thematic slice of the plan (income, taxes, estate, ...).
type Section struct {
	Id              string   `json:"id"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Details         string   `json:"details"`
	Recommendations []string `json:"recommendations"`
	RelatedTools    []string `json:"related_tools"`
	Confidence      string   `json:"confidence"`
	Priority        string   `json:"priority"`
}

type Warning struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Synergy is a cross-tool opportunity the model chose to narrate.
type Synergy struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	InvolvedTools   []string `json:"involved_tools"`
	PotentialImpact float64  `json:"potential_impact"`
}

type MissingDataSuggestion struct {
	ToolId string `json:"tool_id"`
	Tool   string `json:"tool"`
	Reason string `json:"reason"`
}

// Plan is the synthesized narrative + structured recommendation document.
type Plan struct {
	Id                        string                  `json:"id"`
	GeneratedAt               time.Time               `json:"generated_at"`
	ModelUsed                 string                  `json:"model_used"`
	DataCompleteness          int                     `json:"data_completeness"`
	ToolsAnalyzed             []string                `json:"tools_analyzed"`
	ExecutiveSummary          string                  `json:"executive_summary"`
	RetirementReadinessScore  int                     `json:"retirement_readiness_score"`
	TopPriorities             []string                `json:"top_priorities"`
	Sections                  []Section               `json:"sections"`
	Warnings                  []Warning               `json:"warnings"`
	Synergies                 []Synergy               `json:"synergies"`
	ImmediateActions          []string                `json:"immediate_actions"`
	ShortTermActions          []string                `json:"short_term_actions"`
	LongTermActions           []string                `json:"long_term_actions"`
	MissingDataSuggestions    []MissingDataSuggestion `json:"missing_data_suggestions"`
}

// EnsureDefaults backfills every defaulted field so downstream rendering never
// branches on nil. Idempotent.
func (p *Plan) EnsureDefaults() {
	if p.ToolsAnalyzed == nil {
		p.ToolsAnalyzed = []string{}
	}
	if p.TopPriorities == nil {
		p.TopPriorities = []string{}
	}
	if p.Sections == nil {
		p.Sections = []Section{}
	}
	for i := range p.Sections {
		if p.Sections[i].Recommendations == nil {
			p.Sections[i].Recommendations = []string{}
		}
		if p.Sections[i].RelatedTools == nil {
			p.Sections[i].RelatedTools = []string{}
		}
	}
	if p.Warnings == nil {
		p.Warnings = []Warning{}
	}
	if p.Synergies == nil {
		p.Synergies = []Synergy{}
	}
	for i := range p.Synergies {
		if p.Synergies[i].InvolvedTools == nil {
			p.Synergies[i].InvolvedTools = []string{}
		}
	}
	if p.ImmediateActions == nil {
		p.ImmediateActions = []string{}
	}
	if p.ShortTermActions == nil {
		p.ShortTermActions = []string{}
	}
	if p.LongTermActions == nil {
		p.LongTermActions = []string{}
	}
	if p.MissingDataSuggestions == nil {
		p.MissingDataSuggestions = []MissingDataSuggestion{}
	}
	if p.RetirementReadinessScore < 0 {
		p.RetirementReadinessScore = 0
	}
	if p.RetirementReadinessScore > 100 {
		p.RetirementReadinessScore = 100
	}
}
