package insight

import (
	"reflect"
	"testing"
	"time"

	"ai-retirement-be/pkg/tooldata"
)

func snapshotFrom(data map[string]map[string]interface{}) *tooldata.ToolSnapshot {
	raw := map[string]tooldata.RawToolRecord{}
	for toolId, payload := range data {
		raw[toolId] = tooldata.RawToolRecord{Data: payload, CreatedAt: time.Now()}
	}
	return tooldata.Normalize(raw)
}

func findInsight(insights []Insight, id string) *Insight {
	for i := range insights {
		if insights[i].Id == id {
			return &insights[i]
		}
	}
	return nil
}

func TestAnalyzeGetStartedGate(t *testing.T) {
	tests := []struct {
		name string
		data map[string]map[string]interface{}
	}{
		{
			name: "no tools",
			data: map[string]map[string]interface{}{},
		},
		{
			name: "one tool",
			data: map[string]map[string]interface{}{
				tooldata.ToolIncome: {"totalIncome": 80000.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := Analyze(snapshotFrom(tt.data))

			if len(insights) != 1 {
				t.Fatalf("got %d insights, want exactly 1", len(insights))
			}
			if insights[0].Id != "get-started" {
				t.Errorf("Id = %s, want get-started", insights[0].Id)
			}
			if insights[0].Priority != PriorityMedium {
				t.Errorf("Priority = %s, want %s", insights[0].Priority, PriorityMedium)
			}
		})
	}
}

func TestAnalyzeTaxRelocationSynergy(t *testing.T) {
	data := map[string]map[string]interface{}{
		tooldata.ToolTax: {
			"state":            "CA",
			"effectiveTaxRate": 9.3,
			"annualTaxBurden":  18400.0,
		},
		tooldata.ToolIncome: {
			"totalIncome": 85000.0,
		},
	}

	insights := Analyze(snapshotFrom(data))

	synergy := findInsight(insights, "tax-relocation-synergy")
	if synergy == nil {
		t.Fatal("tax-relocation-synergy not detected for CA with no relocation plan")
	}
	if synergy.Priority != PriorityHigh {
		t.Errorf("Priority = %s, want %s", synergy.Priority, PriorityHigh)
	}
	wantImpact := 18400.0 * 0.35 * 10
	if synergy.PotentialImpact != wantImpact {
		t.Errorf("PotentialImpact = %v, want %v", synergy.PotentialImpact, wantImpact)
	}

	// A started relocation plan suppresses the rule.
	data[tooldata.ToolStateRelocation] = map[string]interface{}{"targetState": "NV"}
	insights = Analyze(snapshotFrom(data))
	if findInsight(insights, "tax-relocation-synergy") != nil {
		t.Error("synergy fired even though a relocation plan exists")
	}
}

func TestAnalyzeIncomeShortfall(t *testing.T) {
	data := map[string]map[string]interface{}{
		tooldata.ToolIncome: {
			"totalIncome":      40000.0,
			"guaranteedIncome": 12000.0,
			"expectedExpenses": 72000.0,
		},
		tooldata.ToolLongevity: {
			"planningHorizonYears": 28.0,
		},
	}

	insights := Analyze(snapshotFrom(data))

	shortfall := findInsight(insights, "income-shortfall")
	if shortfall == nil {
		t.Fatal("income-shortfall not detected")
	}
	if shortfall.Priority != PriorityCritical {
		t.Errorf("Priority = %s, want %s", shortfall.Priority, PriorityCritical)
	}
	// 20k gap over the user's own 28-year horizon.
	if shortfall.PotentialImpact != 20000.0*28 {
		t.Errorf("PotentialImpact = %v, want %v", shortfall.PotentialImpact, 20000.0*28)
	}
	if shortfall != &insights[0] && insights[0].Priority != PriorityCritical {
		t.Errorf("critical insight not sorted first, got %s", insights[0].Id)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	data := map[string]map[string]interface{}{
		tooldata.ToolIncome:         {"totalIncome": 40000.0, "expectedExpenses": 72000.0},
		tooldata.ToolTax:            {"state": "NY", "effectiveTaxRate": 9.0, "annualTaxBurden": 15000.0},
		tooldata.ToolSocialSecurity: {"currentAge": 61.0, "claimingAge": 62.0, "fullRetirementAge": 67.0, "estimatedMonthlyBenefit": 2300.0},
		tooldata.ToolLegacy:         {"estateValue": 15000000.0, "hasWill": false},
		tooldata.ToolDigitalEstate:  {"accountsInventoried": false},
	}

	first := Analyze(snapshotFrom(data))
	for i := 0; i < 5; i++ {
		again := Analyze(snapshotFrom(data))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed from first run", i)
		}
	}
}

func TestAnalyzeSortOrder(t *testing.T) {
	data := map[string]map[string]interface{}{
		tooldata.ToolIncome:        {"totalIncome": 40000.0, "expectedExpenses": 72000.0},
		tooldata.ToolLegacy:        {"estateValue": 15000000.0, "hasWill": false},
		tooldata.ToolDigitalEstate: {"accountsInventoried": false},
		tooldata.ToolTax:           {"state": "CA", "effectiveTaxRate": 9.3, "annualTaxBurden": 18400.0},
	}

	insights := Analyze(snapshotFrom(data))
	if len(insights) < 3 {
		t.Fatalf("expected several insights, got %d", len(insights))
	}

	for i := 1; i < len(insights); i++ {
		prev, cur := insights[i-1], insights[i]
		if priorityRank[prev.Priority] < priorityRank[cur.Priority] {
			t.Errorf("insight %d (%s/%s) ranked above %d (%s/%s)",
				i, cur.Id, cur.Priority, i-1, prev.Id, prev.Priority)
		}
		if priorityRank[prev.Priority] == priorityRank[cur.Priority] && prev.PotentialImpact < cur.PotentialImpact {
			t.Errorf("within %s, impact %v sorted above %v", cur.Priority, prev.PotentialImpact, cur.PotentialImpact)
		}
	}

	for _, in := range insights {
		if in.PotentialImpact < 0 {
			t.Errorf("%s has negative impact %v", in.Id, in.PotentialImpact)
		}
	}
}

func TestAnalyzeExpandCoverageBelowHalf(t *testing.T) {
	data := map[string]map[string]interface{}{
		tooldata.ToolIncome: {"totalIncome": 80000.0},
		tooldata.ToolTax:    {"state": "TX", "effectiveTaxRate": 0.0},
	}

	insights := Analyze(snapshotFrom(data))

	expand := findInsight(insights, "expand-coverage")
	if expand == nil {
		t.Fatal("expand-coverage missing at 17% completeness")
	}
	if len(expand.RelatedTools) != 10 {
		t.Errorf("RelatedTools = %d entries, want the 10 empty tools", len(expand.RelatedTools))
	}
}
