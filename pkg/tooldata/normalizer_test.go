package tooldata

import (
	"testing"
	"time"
)

func record(data map[string]interface{}) RawToolRecord {
	return RawToolRecord{Data: data, CreatedAt: time.Now()}
}

// minimalPayloads holds one recognized field per tool so tests can build
// snapshots of any size.
var minimalPayloads = map[string]map[string]interface{}{
	ToolIncome:           {"totalIncome": 80000.0},
	ToolSocialSecurity:   {"currentAge": 61.0},
	ToolTax:              {"state": "CA"},
	ToolHealthcare:       {"hasCoverage": true},
	ToolAbroadRelocation: {"destinationCountry": "Portugal"},
	ToolStateRelocation:  {"targetState": "FL"},
	ToolLongevity:        {"lifeExpectancy": 90.0},
	ToolIdentity:         {"senseOfPurposeScore": 7.0},
	ToolVolunteering:     {"hoursPerWeek": 5.0},
	ToolLegacy:           {"hasWill": true},
	ToolGifting:          {"annualGiftBudget": 10000.0},
	ToolDigitalEstate:    {"accountsInventoried": false},
}

func TestNormalizeCompleteness(t *testing.T) {
	tests := []struct {
		name             string
		raw              map[string]RawToolRecord
		wantTools        []string
		wantCompleteness int
	}{
		{
			name:             "no data",
			raw:              map[string]RawToolRecord{},
			wantTools:        []string{},
			wantCompleteness: 0,
		},
		{
			name: "two of twelve tools",
			raw: map[string]RawToolRecord{
				ToolIncome: record(map[string]interface{}{
					"totalIncome":      80000.0,
					"expectedExpenses": 65000.0,
				}),
				ToolTax: record(map[string]interface{}{
					"state":            "CA",
					"effectiveTaxRate": 9.3,
				}),
			},
			wantTools:        []string{ToolIncome, ToolTax},
			wantCompleteness: 17, // round(100*2/12)
		},
		{
			name: "empty record does not count",
			raw: map[string]RawToolRecord{
				ToolIncome: record(map[string]interface{}{
					"totalIncome": 80000.0,
				}),
				ToolTax: record(map[string]interface{}{}),
			},
			wantTools:        []string{ToolIncome},
			wantCompleteness: 8, // round(100*1/12)
		},
		{
			name: "unrecognized fields do not count",
			raw: map[string]RawToolRecord{
				ToolIncome: record(map[string]interface{}{
					"notes": "call the advisor",
				}),
			},
			wantTools:        []string{},
			wantCompleteness: 0,
		},
		{
			name: "unknown tool id is ignored",
			raw: map[string]RawToolRecord{
				"crypto-optimizer": record(map[string]interface{}{"coins": 42.0}),
				ToolLongevity: record(map[string]interface{}{
					"lifeExpectancy": 90.0,
				}),
			},
			wantTools:        []string{ToolLongevity},
			wantCompleteness: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Normalize(tt.raw)

			if snapshot.DataCompleteness != tt.wantCompleteness {
				t.Errorf("DataCompleteness = %d, want %d", snapshot.DataCompleteness, tt.wantCompleteness)
			}
			if len(snapshot.ToolsWithData) != len(tt.wantTools) {
				t.Fatalf("ToolsWithData = %v, want %v", snapshot.ToolsWithData, tt.wantTools)
			}
			for i, toolId := range tt.wantTools {
				if snapshot.ToolsWithData[i] != toolId {
					t.Errorf("ToolsWithData[%d] = %s, want %s", i, snapshot.ToolsWithData[i], toolId)
				}
			}
		})
	}
}

func TestNormalizeFieldCoercion(t *testing.T) {
	raw := map[string]RawToolRecord{
		ToolIncome: record(map[string]interface{}{
			"totalIncome":      85000,    // int from an older tool version
			"guaranteedIncome": 32000.0,  // canonical JSON float
			"savingsBalance":   int64(410000),
			"sources": []interface{}{
				map[string]interface{}{"name": "401k", "amount": 2100.0},
				map[string]interface{}{"name": "pension", "amount": 900.0},
			},
		}),
		ToolSocialSecurity: record(map[string]interface{}{
			"currentAge":  61.0, // json numbers arrive as float64
			"claimingAge": 62,
		}),
	}

	snapshot := Normalize(raw)

	if snapshot.Income == nil {
		t.Fatal("Income = nil, want populated")
	}
	if snapshot.Income.TotalIncome != 85000 {
		t.Errorf("TotalIncome = %v, want 85000", snapshot.Income.TotalIncome)
	}
	if snapshot.Income.SavingsBalance != 410000 {
		t.Errorf("SavingsBalance = %v, want 410000", snapshot.Income.SavingsBalance)
	}
	if len(snapshot.Income.Sources) != 2 {
		t.Fatalf("Sources = %v, want 2 entries", snapshot.Income.Sources)
	}
	if snapshot.Income.Sources[0].Name != "401k" || snapshot.Income.Sources[0].Amount != 2100 {
		t.Errorf("Sources[0] = %+v, want 401k/2100", snapshot.Income.Sources[0])
	}
	if snapshot.SocialSecurity == nil {
		t.Fatal("SocialSecurity = nil, want populated")
	}
	if snapshot.SocialSecurity.CurrentAge != 61 {
		t.Errorf("CurrentAge = %d, want 61", snapshot.SocialSecurity.CurrentAge)
	}
	if snapshot.SocialSecurity.ClaimingAge != 62 {
		t.Errorf("ClaimingAge = %d, want 62", snapshot.SocialSecurity.ClaimingAge)
	}
}

func TestNormalizeMalformedToolIsolated(t *testing.T) {
	// A record whose fields all fail coercion must not poison the rest of
	// the snapshot.
	raw := map[string]RawToolRecord{
		ToolTax: record(map[string]interface{}{
			"state":            map[string]interface{}{"nested": true},
			"effectiveTaxRate": []interface{}{1, 2},
		}),
		ToolLegacy: record(map[string]interface{}{
			"estateValue": 1250000.0,
			"hasWill":     true,
		}),
	}

	snapshot := Normalize(raw)

	if snapshot.Tax != nil {
		t.Errorf("Tax = %+v, want nil for unusable record", snapshot.Tax)
	}
	if snapshot.Legacy == nil {
		t.Fatal("Legacy = nil, want populated despite sibling failure")
	}
	if !snapshot.Legacy.HasWill {
		t.Error("HasWill = false, want true")
	}
	if snapshot.DataCompleteness != 8 {
		t.Errorf("DataCompleteness = %d, want 8", snapshot.DataCompleteness)
	}
}

func TestNormalizeMonotonicCompleteness(t *testing.T) {
	raw := map[string]RawToolRecord{}
	prev := 0
	for i, toolId := range KnownTools {
		raw[toolId] = record(minimalPayloads[toolId])
		snapshot := Normalize(raw)
		if snapshot.DataCompleteness < prev {
			t.Fatalf("completeness dropped from %d to %d after tool %d", prev, snapshot.DataCompleteness, i)
		}
		prev = snapshot.DataCompleteness
	}
	if prev != 100 {
		t.Errorf("completeness with all tools = %d, want 100", prev)
	}
}
