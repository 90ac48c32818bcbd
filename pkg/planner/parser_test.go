package planner

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePlan(t *testing.T) {
	body := `{"executive_summary":"On track with caveats.","retirement_readiness_score":68,"sections":[{"id":"income","title":"Income","summary":"s","recommendations":["r1"]}]}`

	tests := []struct {
		name string
		raw  string
	}{
		{"bare JSON", body},
		{"json fence", "```json\n" + body + "\n```"},
		{"plain fence", "```\n" + body + "\n```"},
		{"prose wrapped", "Here is your plan:\n\n" + body + "\n\nLet me know if you need changes."},
		{"leading whitespace", "\n\n   " + body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlan(tt.raw)
			if err != nil {
				t.Fatalf("ParsePlan: %v", err)
			}
			if got.ExecutiveSummary != "On track with caveats." {
				t.Errorf("ExecutiveSummary = %q", got.ExecutiveSummary)
			}
			if got.RetirementReadinessScore != 68 {
				t.Errorf("RetirementReadinessScore = %d, want 68", got.RetirementReadinessScore)
			}
			if len(got.Sections) != 1 || got.Sections[0].Id != "income" {
				t.Errorf("Sections = %+v", got.Sections)
			}
		})
	}
}

func TestParsePlanBackfillsDefaults(t *testing.T) {
	got, err := ParsePlan(`{"executive_summary":"minimal","sections":[{"id":"a","title":"A"}]}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}

	if got.Warnings == nil || got.Synergies == nil || got.TopPriorities == nil {
		t.Error("top-level arrays not backfilled to empty")
	}
	if got.ImmediateActions == nil || got.ShortTermActions == nil || got.LongTermActions == nil {
		t.Error("action arrays not backfilled to empty")
	}
	if got.Sections[0].Recommendations == nil || got.Sections[0].RelatedTools == nil {
		t.Error("nested section arrays not backfilled to empty")
	}
}

func TestParsePlanClampsScore(t *testing.T) {
	got, err := ParsePlan(`{"retirement_readiness_score":140}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if got.RetirementReadinessScore != 100 {
		t.Errorf("score = %d, want clamped to 100", got.RetirementReadinessScore)
	}
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no JSON at all", "I'm sorry, I can't generate a plan right now."},
		{"truncated object", `{"executive_summary":"cut off`},
		{"fence with no object", "```json\nnot json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan(tt.raw)
			if err == nil {
				t.Fatal("expected parse error")
			}
			var parseErr *PlanParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error type = %T, want *PlanParseError", err)
			}
			if len(parseErr.RawPrefix) > 500 {
				t.Errorf("RawPrefix length = %d, want <= 500", len(parseErr.RawPrefix))
			}
		})
	}
}

func TestParsePlanErrorTruncatesPrefix(t *testing.T) {
	raw := "garbage " + strings.Repeat("x", 2000)
	_, err := ParsePlan(raw)

	var parseErr *PlanParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *PlanParseError", err)
	}
	if len(parseErr.RawPrefix) != 500 {
		t.Errorf("RawPrefix length = %d, want exactly 500", len(parseErr.RawPrefix))
	}
	if !strings.HasPrefix(raw, parseErr.RawPrefix) {
		t.Error("RawPrefix is not a prefix of the raw output")
	}
}
