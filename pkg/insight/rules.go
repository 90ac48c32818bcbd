package insight

import (
	"fmt"

	"ai-retirement-be/pkg/tooldata"
)

// Tunable thresholds for the detection rules. Values are design-level policy,
// kept here so every rule quantifies impact the same way.
const (
	highTaxRateThreshold = 8.0 // effective rate (%) above which a state counts as high-tax
	relocationHorizonYrs = 10
	relocationTaxShare   = 0.35 // share of the burden a low-tax state typically removes
	shortfallHorizonYrs  = 10
	estateTaxExemption   = 13_610_000.0
	estateTaxRate        = 0.40
	annualGiftExclusion  = 18_000.0
	earlyClaimPenalty    = 0.0667 // benefit reduction per year claimed before FRA
	uncoveredAnnualCost  = 15_000.0
)

// highTaxStates are states whose combined income tax profile makes relocation
// a meaningful lever even at moderate effective rates.
var highTaxStates = map[string]bool{
	"CA": true,
	"NY": true,
	"NJ": true,
	"OR": true,
	"MN": true,
	"HI": true,
	"VT": true,
}

// A rule is an independent, pure predicate over the snapshot. Rules return nil
// when they do not apply and must not depend on evaluation order.
type rule func(s *tooldata.ToolSnapshot) *Insight

// crossToolRules require at least two populated domains (the analyzer gates them).
var crossToolRules = []rule{
	ruleIncomeShortfall,
	ruleTaxRelocationSynergy,
	ruleEarlyClaiming,
	ruleCoverageGap,
	ruleEstateTaxExposure,
	ruleMissingWill,
	ruleMissingLongevityPlan,
	ruleAbroadCostDifferential,
	ruleGiftingHeadroom,
	ruleDigitalEstateHygiene,
	rulePurposeThroughService,
}

func ruleIncomeShortfall(s *tooldata.ToolSnapshot) *Insight {
	if s.Income == nil {
		return nil
	}
	annualIncome := s.Income.TotalIncome + s.Income.GuaranteedIncome
	if s.Income.ExpectedExpenses <= 0 || annualIncome >= s.Income.ExpectedExpenses {
		return nil
	}

	gap := s.Income.ExpectedExpenses - annualIncome
	years := horizonYears(s, shortfallHorizonYrs)

	return &Insight{
		Id:       "income-shortfall",
		Priority: PriorityCritical,
		Title:    "Projected income shortfall",
		Description: fmt.Sprintf(
			"Expected annual expenses exceed projected income by $%.0f. Over a %d-year horizon this gap compounds; consider adjusting spending, delaying retirement, or increasing guaranteed income.",
			gap, years),
		PotentialImpact: gap * float64(years),
		RelatedTools:    relatedTools(s, tooldata.ToolIncome, tooldata.ToolLongevity),
	}
}

func ruleTaxRelocationSynergy(s *tooldata.ToolSnapshot) *Insight {
	if s.Tax == nil || s.StateRelocation != nil {
		return nil
	}
	if !highTaxStates[s.Tax.State] && s.Tax.EffectiveTaxRate < highTaxRateThreshold {
		return nil
	}

	burden := s.Tax.AnnualTaxBurden
	if burden == 0 && s.Income != nil {
		burden = s.Income.TotalIncome * s.Tax.EffectiveTaxRate / 100
	}
	impact := burden * relocationTaxShare * relocationHorizonYrs

	return &Insight{
		Id:       "tax-relocation-synergy",
		Priority: PriorityHigh,
		Title:    fmt.Sprintf("High tax burden in %s with no relocation plan", s.Tax.State),
		Description: fmt.Sprintf(
			"Your effective tax rate of %.1f%% in %s is among the highest in the country, and you have not yet explored relocating. Moving to a lower-tax state could recover roughly %.0f%% of that burden every year.",
			s.Tax.EffectiveTaxRate, s.Tax.State, relocationTaxShare*100),
		PotentialImpact: impact,
		RelatedTools:    relatedTools(s, tooldata.ToolTax, tooldata.ToolStateRelocation, tooldata.ToolIncome),
	}
}

func ruleEarlyClaiming(s *tooldata.ToolSnapshot) *Insight {
	ss := s.SocialSecurity
	if ss == nil || ss.FullRetirementAge == 0 || ss.ClaimingAge == 0 {
		return nil
	}
	if ss.ClaimingAge >= ss.FullRetirementAge {
		return nil
	}

	yearsEarly := ss.FullRetirementAge - ss.ClaimingAge
	annualBenefit := ss.EstimatedMonthlyBenefit * 12
	// Permanent reduction, applied over the remaining horizon past FRA.
	impact := annualBenefit * earlyClaimPenalty * float64(yearsEarly) * float64(horizonYears(s, 15))

	return &Insight{
		Id:       "early-claiming",
		Priority: PriorityHigh,
		Title:    "Social Security claimed before full retirement age",
		Description: fmt.Sprintf(
			"Claiming at %d instead of %d locks in a permanent benefit reduction of roughly %.0f%%. If other income can bridge the gap, delaying raises every future check.",
			ss.ClaimingAge, ss.FullRetirementAge, earlyClaimPenalty*float64(yearsEarly)*100),
		PotentialImpact: impact,
		RelatedTools:    relatedTools(s, tooldata.ToolSocialSecurity, tooldata.ToolIncome, tooldata.ToolLongevity),
	}
}

func ruleCoverageGap(s *tooldata.ToolSnapshot) *Insight {
	hc := s.Healthcare
	if hc == nil || hc.HasCoverage || hc.MedicareEnrolled {
		return nil
	}

	cost := hc.EstimatedAnnualCost
	if cost == 0 {
		cost = uncoveredAnnualCost
	}

	return &Insight{
		Id:       "healthcare-coverage-gap",
		Priority: PriorityCritical,
		Title:    "No health coverage on record",
		Description: fmt.Sprintf(
			"You are neither privately covered nor enrolled in Medicare. A single uncovered year typically costs $%.0f or more; closing this gap protects every other part of the plan.",
			cost),
		PotentialImpact: cost,
		RelatedTools:    relatedTools(s, tooldata.ToolHealthcare, tooldata.ToolIncome),
	}
}

func ruleEstateTaxExposure(s *tooldata.ToolSnapshot) *Insight {
	if s.Legacy == nil || s.Legacy.EstateValue <= estateTaxExemption {
		return nil
	}

	exposed := s.Legacy.EstateValue - estateTaxExemption
	return &Insight{
		Id:       "estate-tax-exposure",
		Priority: PriorityCritical,
		Title:    "Estate value above the federal exemption",
		Description: fmt.Sprintf(
			"Roughly $%.0f of your estate sits above the federal exemption and is exposed to a 40%% estate tax. Trusts and lifetime gifting can shelter much of it.",
			exposed),
		PotentialImpact: exposed * estateTaxRate,
		RelatedTools:    relatedTools(s, tooldata.ToolLegacy, tooldata.ToolGifting),
	}
}

func ruleMissingWill(s *tooldata.ToolSnapshot) *Insight {
	if s.Legacy == nil || s.Legacy.HasWill {
		return nil
	}

	return &Insight{
		Id:       "missing-will",
		Priority: PriorityHigh,
		Title:    "Legacy plan started but no will in place",
		Description: "You have captured legacy intentions but no will. Without one, state " +
			"intestacy rules decide who inherits, regardless of what you entered here.",
		PotentialImpact: 0,
		RelatedTools:    relatedTools(s, tooldata.ToolLegacy, tooldata.ToolDigitalEstate),
	}
}

func ruleMissingLongevityPlan(s *tooldata.ToolSnapshot) *Insight {
	if s.Longevity != nil {
		return nil
	}
	if s.Income == nil && s.SocialSecurity == nil {
		return nil
	}

	return &Insight{
		Id:       "missing-longevity-plan",
		Priority: PriorityHigh,
		Title:    "No longevity assumptions behind your numbers",
		Description: "Your income and benefit projections have no planning horizon behind them. " +
			"A plan built for 20 years fails quietly in year 21; add a life-expectancy estimate.",
		PotentialImpact: 0,
		RelatedTools:    relatedTools(s, tooldata.ToolLongevity, tooldata.ToolIncome, tooldata.ToolSocialSecurity),
	}
}

func ruleAbroadCostDifferential(s *tooldata.ToolSnapshot) *Insight {
	ab := s.AbroadRelocation
	if ab == nil || s.Income == nil || ab.EstimatedMonthlyCost <= 0 {
		return nil
	}
	monthlyExpenses := s.Income.ExpectedExpenses / 12
	if monthlyExpenses <= ab.EstimatedMonthlyCost {
		return nil
	}

	annualSavings := (monthlyExpenses - ab.EstimatedMonthlyCost) * 12
	return &Insight{
		Id:       "abroad-cost-differential",
		Priority: PriorityMedium,
		Title:    fmt.Sprintf("Living in %s would cut your annual spending", ab.DestinationCountry),
		Description: fmt.Sprintf(
			"Your estimated cost of living in %s is $%.0f/month against $%.0f/month at home, a $%.0f annual difference before visa and healthcare costs.",
			ab.DestinationCountry, ab.EstimatedMonthlyCost, monthlyExpenses, annualSavings),
		PotentialImpact: annualSavings * relocationHorizonYrs,
		RelatedTools:    relatedTools(s, tooldata.ToolAbroadRelocation, tooldata.ToolIncome, tooldata.ToolTax),
	}
}

func ruleGiftingHeadroom(s *tooldata.ToolSnapshot) *Insight {
	if s.Gifting == nil || s.Legacy == nil {
		return nil
	}
	recipients := len(s.Gifting.Recipients)
	if recipients == 0 || s.Legacy.EstateValue < estateTaxExemption/2 {
		return nil
	}
	headroom := annualGiftExclusion*float64(recipients) - s.Gifting.AnnualGiftBudget
	if headroom <= 0 {
		return nil
	}

	return &Insight{
		Id:       "gifting-headroom",
		Priority: PriorityMedium,
		Title:    "Unused annual gift exclusion",
		Description: fmt.Sprintf(
			"With %d recipients you could gift $%.0f per year tax-free but are budgeting $%.0f. Annual gifting moves value out of a large estate at zero tax cost.",
			recipients, annualGiftExclusion*float64(recipients), s.Gifting.AnnualGiftBudget),
		PotentialImpact: headroom * estateTaxRate,
		RelatedTools:    relatedTools(s, tooldata.ToolGifting, tooldata.ToolLegacy),
	}
}

func ruleDigitalEstateHygiene(s *tooldata.ToolSnapshot) *Insight {
	de := s.DigitalEstate
	if de == nil || (de.AccountsInventoried && de.DigitalExecutorNamed) {
		return nil
	}

	return &Insight{
		Id:       "digital-estate-hygiene",
		Priority: PriorityMedium,
		Title:    "Digital estate is not settled",
		Description: "Your digital accounts are not fully inventoried or have no named executor. " +
			"Unreachable accounts are routinely lost to heirs; an inventory plus a named executor fixes both.",
		PotentialImpact: 0,
		RelatedTools:    relatedTools(s, tooldata.ToolDigitalEstate, tooldata.ToolLegacy),
	}
}

func rulePurposeThroughService(s *tooldata.ToolSnapshot) *Insight {
	if s.Identity == nil || s.Volunteering == nil {
		return nil
	}
	if s.Identity.SenseOfPurposeScore == 0 || s.Identity.SenseOfPurposeScore > 5 {
		return nil
	}
	if len(s.Volunteering.Interests) == 0 {
		return nil
	}

	return &Insight{
		Id:       "purpose-through-service",
		Priority: PriorityLow,
		Title:    "Your volunteering interests match your purpose gap",
		Description: fmt.Sprintf(
			"You rated your sense of purpose %d/10 but already listed %d volunteering interests. Committing regular hours to one of them is the most reliable lever for post-career wellbeing.",
			s.Identity.SenseOfPurposeScore, len(s.Volunteering.Interests)),
		PotentialImpact: 0,
		RelatedTools:    relatedTools(s, tooldata.ToolIdentity, tooldata.ToolVolunteering),
	}
}

// horizonYears prefers the user's own longevity horizon, falling back to a default.
func horizonYears(s *tooldata.ToolSnapshot, fallback int) int {
	if s.Longevity != nil && s.Longevity.PlanningHorizonYears > 0 {
		return s.Longevity.PlanningHorizonYears
	}
	return fallback
}

// relatedTools keeps only the tools that actually have data in this snapshot,
// always including the first (the rule's primary subject).
func relatedTools(s *tooldata.ToolSnapshot, primary string, others ...string) []string {
	out := []string{primary}
	for _, id := range others {
		if s.HasTool(id) {
			out = append(out, id)
		}
	}
	return out
}
