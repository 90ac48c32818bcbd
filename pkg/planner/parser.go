package planner

import (
	"encoding/json"
	"errors"
	"strings"

	"ai-retirement-be/pkg/plan"
)

// ParsePlan turns raw model output into a Plan. It strips markdown fences,
// falls back to brace-scanning for models that wrap JSON in prose (a model
// that lost forced-JSON mode still parses), and backfills every defaulted
// field. It never triggers a re-generation.
func ParsePlan(raw string) (*plan.Plan, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, newPlanParseError(raw, errors.New("response contains no JSON object"))
	}

	var parsed plan.Plan
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, newPlanParseError(raw, err)
	}

	parsed.EnsureDefaults()
	return &parsed, nil
}

// extractJSON strips code-fence wrapping and scans from the first '{' to the
// last '}'.
func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}
