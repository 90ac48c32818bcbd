package tooldata

import (
	"math"
	"sort"
	"time"
)

// Normalize turns the raw per-tool record map into a typed ToolSnapshot.
// A tool counts as "with data" only when its transform recognized at least one
// populated field. A malformed record (wrong field types, nil map, panicking
// transform) degrades to "no data" for that tool; the other 11 are unaffected.
func Normalize(raw map[string]RawToolRecord) *ToolSnapshot {
	snapshot := &ToolSnapshot{
		ToolsWithData: []string{},
		LastUpdated:   map[string]time.Time{},
	}

	for _, toolId := range KnownTools {
		record, exists := raw[toolId]
		if !exists || len(record.Data) == 0 {
			continue
		}

		if ok := applyTool(snapshot, toolId, record.Data); ok {
			snapshot.ToolsWithData = append(snapshot.ToolsWithData, toolId)
			snapshot.LastUpdated[toolId] = record.CreatedAt
		}
	}

	// KnownTools is already ordered, but sort anyway so callers never depend
	// on declaration order.
	sort.Strings(snapshot.ToolsWithData)
	snapshot.DataCompleteness = int(math.Round(100 * float64(len(snapshot.ToolsWithData)) / float64(len(KnownTools))))

	return snapshot
}

// applyTool runs one tool's transform with panic containment. Returns false
// when the record had nothing usable for this domain.
func applyTool(snapshot *ToolSnapshot, toolId string, data map[string]interface{}) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	switch toolId {
	case ToolIncome:
		return normalizeIncome(snapshot, data)
	case ToolSocialSecurity:
		return normalizeSocialSecurity(snapshot, data)
	case ToolTax:
		return normalizeTax(snapshot, data)
	case ToolHealthcare:
		return normalizeHealthcare(snapshot, data)
	case ToolAbroadRelocation:
		return normalizeAbroadRelocation(snapshot, data)
	case ToolStateRelocation:
		return normalizeStateRelocation(snapshot, data)
	case ToolLongevity:
		return normalizeLongevity(snapshot, data)
	case ToolIdentity:
		return normalizeIdentity(snapshot, data)
	case ToolVolunteering:
		return normalizeVolunteering(snapshot, data)
	case ToolLegacy:
		return normalizeLegacy(snapshot, data)
	case ToolGifting:
		return normalizeGifting(snapshot, data)
	case ToolDigitalEstate:
		return normalizeDigitalEstate(snapshot, data)
	}
	return false
}

func normalizeIncome(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &IncomeData{Sources: []IncomeSource{}}
	populated := false

	if v, ok := asFloat(data["totalIncome"]); ok {
		d.TotalIncome = v
		populated = true
	}
	if v, ok := asFloat(data["guaranteedIncome"]); ok {
		d.GuaranteedIncome = v
		populated = true
	}
	if v, ok := asFloat(data["expectedExpenses"]); ok {
		d.ExpectedExpenses = v
		populated = true
	}
	if v, ok := asFloat(data["savingsBalance"]); ok {
		d.SavingsBalance = v
		populated = true
	}
	if items, ok := data["sources"].([]interface{}); ok {
		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			src := IncomeSource{}
			if name, ok := asString(entry["name"]); ok {
				src.Name = name
			}
			if amount, ok := asFloat(entry["amount"]); ok {
				src.Amount = amount
			}
			if src.Name != "" || src.Amount != 0 {
				d.Sources = append(d.Sources, src)
				populated = true
			}
		}
	}

	if populated {
		s.Income = d
	}
	return populated
}

func normalizeSocialSecurity(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &SocialSecurityData{}
	populated := false

	if v, ok := asInt(data["currentAge"]); ok {
		d.CurrentAge = v
		populated = true
	}
	if v, ok := asInt(data["claimingAge"]); ok {
		d.ClaimingAge = v
		populated = true
	}
	if v, ok := asInt(data["fullRetirementAge"]); ok {
		d.FullRetirementAge = v
		populated = true
	}
	if v, ok := asFloat(data["estimatedMonthlyBenefit"]); ok {
		d.EstimatedMonthlyBenefit = v
		populated = true
	}

	if populated {
		s.SocialSecurity = d
	}
	return populated
}

func normalizeTax(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &TaxData{}
	populated := false

	if v, ok := asString(data["state"]); ok && v != "" {
		d.State = v
		populated = true
	}
	if v, ok := asString(data["filingStatus"]); ok && v != "" {
		d.FilingStatus = v
		populated = true
	}
	if v, ok := asFloat(data["effectiveTaxRate"]); ok {
		d.EffectiveTaxRate = v
		populated = true
	}
	if v, ok := asFloat(data["annualTaxBurden"]); ok {
		d.AnnualTaxBurden = v
		populated = true
	}

	if populated {
		s.Tax = d
	}
	return populated
}

func normalizeHealthcare(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &HealthcareData{}
	populated := false

	if v, ok := asBool(data["hasCoverage"]); ok {
		d.HasCoverage = v
		populated = true
	}
	if v, ok := asBool(data["medicareEnrolled"]); ok {
		d.MedicareEnrolled = v
		populated = true
	}
	if v, ok := asFloat(data["monthlyPremium"]); ok {
		d.MonthlyPremium = v
		populated = true
	}
	if v, ok := asFloat(data["estimatedAnnualCost"]); ok {
		d.EstimatedAnnualCost = v
		populated = true
	}

	if populated {
		s.Healthcare = d
	}
	return populated
}

func normalizeAbroadRelocation(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &AbroadRelocationData{}
	populated := false

	if v, ok := asString(data["destinationCountry"]); ok && v != "" {
		d.DestinationCountry = v
		populated = true
	}
	if v, ok := asFloat(data["estimatedMonthlyCost"]); ok {
		d.EstimatedMonthlyCost = v
		populated = true
	}
	if v, ok := asBool(data["residencyVisaPlanned"]); ok {
		d.ResidencyVisaPlanned = v
		populated = true
	}

	if populated {
		s.AbroadRelocation = d
	}
	return populated
}

func normalizeStateRelocation(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &StateRelocationData{}
	populated := false

	if v, ok := asString(data["currentState"]); ok && v != "" {
		d.CurrentState = v
		populated = true
	}
	if v, ok := asString(data["targetState"]); ok && v != "" {
		d.TargetState = v
		populated = true
	}
	if v, ok := asFloat(data["estimatedTaxSavings"]); ok {
		d.EstimatedTaxSavings = v
		populated = true
	}

	if populated {
		s.StateRelocation = d
	}
	return populated
}

func normalizeLongevity(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &LongevityData{}
	populated := false

	if v, ok := asInt(data["lifeExpectancy"]); ok {
		d.LifeExpectancy = v
		populated = true
	}
	if v, ok := asInt(data["planningHorizonYears"]); ok {
		d.PlanningHorizonYears = v
		populated = true
	}
	if v, ok := asBool(data["familyHistoryConsidered"]); ok {
		d.FamilyHistoryConsidered = v
		populated = true
	}

	if populated {
		s.Longevity = d
	}
	return populated
}

func normalizeIdentity(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &IdentityData{PostCareerGoals: []string{}}
	populated := false

	if goals, ok := asStringSlice(data["postCareerGoals"]); ok && len(goals) > 0 {
		d.PostCareerGoals = goals
		populated = true
	}
	if v, ok := asInt(data["senseOfPurposeScore"]); ok {
		d.SenseOfPurposeScore = v
		populated = true
	}

	if populated {
		s.Identity = d
	}
	return populated
}

func normalizeVolunteering(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &VolunteeringData{Interests: []string{}, Organizations: []string{}}
	populated := false

	if items, ok := asStringSlice(data["interests"]); ok && len(items) > 0 {
		d.Interests = items
		populated = true
	}
	if items, ok := asStringSlice(data["organizations"]); ok && len(items) > 0 {
		d.Organizations = items
		populated = true
	}
	if v, ok := asFloat(data["hoursPerWeek"]); ok {
		d.HoursPerWeek = v
		populated = true
	}

	if populated {
		s.Volunteering = d
	}
	return populated
}

func normalizeLegacy(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &LegacyData{Beneficiaries: []string{}}
	populated := false

	if v, ok := asFloat(data["estateValue"]); ok {
		d.EstateValue = v
		populated = true
	}
	if v, ok := asBool(data["hasWill"]); ok {
		d.HasWill = v
		populated = true
	}
	if v, ok := asBool(data["hasTrust"]); ok {
		d.HasTrust = v
		populated = true
	}
	if items, ok := asStringSlice(data["beneficiaries"]); ok && len(items) > 0 {
		d.Beneficiaries = items
		populated = true
	}

	if populated {
		s.Legacy = d
	}
	return populated
}

func normalizeGifting(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &GiftingData{Recipients: []string{}}
	populated := false

	if v, ok := asFloat(data["annualGiftBudget"]); ok {
		d.AnnualGiftBudget = v
		populated = true
	}
	if v, ok := asFloat(data["lifetimeGiftsTotal"]); ok {
		d.LifetimeGiftsTotal = v
		populated = true
	}
	if items, ok := asStringSlice(data["recipients"]); ok && len(items) > 0 {
		d.Recipients = items
		populated = true
	}

	if populated {
		s.Gifting = d
	}
	return populated
}

func normalizeDigitalEstate(s *ToolSnapshot, data map[string]interface{}) bool {
	d := &DigitalEstateData{}
	populated := false

	if v, ok := asBool(data["accountsInventoried"]); ok {
		d.AccountsInventoried = v
		populated = true
	}
	if v, ok := asBool(data["passwordManagerUsed"]); ok {
		d.PasswordManagerUsed = v
		populated = true
	}
	if v, ok := asBool(data["digitalExecutorNamed"]); ok {
		d.DigitalExecutorNamed = v
		populated = true
	}
	if v, ok := asInt(data["accountCount"]); ok {
		d.AccountCount = v
		populated = true
	}

	if populated {
		s.DigitalEstate = d
	}
	return populated
}
