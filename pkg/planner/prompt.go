package planner

import (
	"encoding/json"
	"strings"

	"ai-retirement-be/pkg/insight"
	"ai-retirement-be/pkg/tooldata"
)

// SystemPrompt frames the model's role for every generation call.
const SystemPrompt = "You are a retirement planning analyst. You synthesize data from " +
	"independent planning tools into one coherent, actionable plan. Respond with JSON only, " +
	"matching the requested schema exactly, without extra text."

// PromptBuilder assembles the generation prompt from the snapshot, the
// detected insights, and the caller's focus areas.
type PromptBuilder struct {
	snapshot   *tooldata.ToolSnapshot
	insights   []insight.Insight
	focusAreas []string
}

func NewPromptBuilder(snapshot *tooldata.ToolSnapshot, insights []insight.Insight, focusAreas []string) *PromptBuilder {
	return &PromptBuilder{
		snapshot:   snapshot,
		insights:   insights,
		focusAreas: focusAreas,
	}
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writeSnapshot(&prompt)
	b.writeInsights(&prompt)
	b.writeFocusAreas(&prompt)
	b.writeTask(&prompt)
	b.writeSchema(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writeSnapshot(prompt *strings.Builder) {
	prompt.WriteString("<user_data>\n")
	payload, err := json.MarshalIndent(b.snapshot, "", "  ")
	if err != nil {
		// Snapshot is our own plain struct; this cannot realistically fail.
		payload = []byte("{}")
	}
	prompt.Write(payload)
	prompt.WriteString("\n</user_data>\n\n")
}

func (b *PromptBuilder) writeInsights(prompt *strings.Builder) {
	if len(b.insights) == 0 {
		return
	}

	prompt.WriteString("<detected_opportunities>\n")
	prompt.WriteString("A rule engine already detected these cross-tool opportunities. Weave them into the plan; do not contradict them:\n")
	for _, item := range b.insights {
		payload, err := json.Marshal(item)
		if err != nil {
			continue
		}
		prompt.WriteString("- ")
		prompt.Write(payload)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</detected_opportunities>\n\n")
}

func (b *PromptBuilder) writeFocusAreas(prompt *strings.Builder) {
	if len(b.focusAreas) == 0 {
		return
	}

	prompt.WriteString("<focus_areas>\n")
	prompt.WriteString("The user asked for extra depth on: ")
	prompt.WriteString(strings.Join(b.focusAreas, ", "))
	prompt.WriteString("\n</focus_areas>\n\n")
}

func (b *PromptBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("Synthesize a single retirement plan from the data above.\n")
	prompt.WriteString("Principles:\n")
	prompt.WriteString("1. Base every number on the user data; never invent balances or benefits\n")
	prompt.WriteString("2. Write one section per populated tool domain, plus cross-cutting sections where the data warrants them\n")
	prompt.WriteString("3. Quantify recommendations wherever the data allows\n")
	prompt.WriteString("4. Score retirement readiness 0-100 against the completeness and health of the data\n")
	prompt.WriteString("5. Name the tools that are still missing data and why each would sharpen the plan\n")
	prompt.WriteString("6. Split actions into immediate (this month), short-term (this year), and long-term\n")
	prompt.WriteString("</task>\n\n")
}

func (b *PromptBuilder) writeSchema(prompt *strings.Builder) {
	prompt.WriteString("Respond with JSON matching exactly this schema (no code fences, no commentary):\n")
	prompt.WriteString(`{
  "executive_summary": string,
  "retirement_readiness_score": integer 0-100,
  "top_priorities": [string],
  "sections": [
    {
      "id": string,
      "title": string,
      "summary": string,
      "details": string,
      "recommendations": [string],
      "related_tools": [string],
      "confidence": "high" | "medium" | "low",
      "priority": "critical" | "high" | "medium" | "low"
    }
  ],
  "warnings": [{"severity": "critical" | "warning" | "info", "message": string}],
  "synergies": [
    {"title": string, "description": string, "involved_tools": [string], "potential_impact": number}
  ],
  "immediate_actions": [string],
  "short_term_actions": [string],
  "long_term_actions": [string],
  "missing_data_suggestions": [{"tool_id": string, "tool": string, "reason": string}]
}`)
}
