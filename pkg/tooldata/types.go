package tooldata

import "time"

// Tool identifiers for the 12 planning tools whose data feeds the snapshot.
const (
	ToolIncome           = "income"
	ToolSocialSecurity   = "social-security"
	ToolTax              = "tax"
	ToolHealthcare       = "healthcare"
	ToolAbroadRelocation = "abroad-relocation"
	ToolStateRelocation  = "state-relocation"
	ToolLongevity        = "longevity"
	ToolIdentity         = "identity"
	ToolVolunteering     = "volunteering"
	ToolLegacy           = "legacy"
	ToolGifting          = "gifting"
	ToolDigitalEstate    = "digital-estate"

	// ToolPlanArtifact is reserved for the orchestrator's own cached plan in the
	// durable store. It is NOT one of the 12 planning tools.
	ToolPlanArtifact = "retirement-plan"
)

// KnownTools lists every planning tool in a fixed order.
var KnownTools = []string{
	ToolIncome,
	ToolSocialSecurity,
	ToolTax,
	ToolHealthcare,
	ToolAbroadRelocation,
	ToolStateRelocation,
	ToolLongevity,
	ToolIdentity,
	ToolVolunteering,
	ToolLegacy,
	ToolGifting,
	ToolDigitalEstate,
}

// IsKnownTool reports whether toolId is one of the 12 planning tools.
func IsKnownTool(toolId string) bool {
	for _, id := range KnownTools {
		if id == toolId {
			return true
		}
	}
	return false
}

// RawToolRecord is one tool's stored payload as it comes out of the durable store.
// The Data map is whatever the tool saved; the normalizer owns interpreting it.
type RawToolRecord struct {
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
}

type IncomeSource struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type IncomeData struct {
	TotalIncome      float64        `json:"total_income"`
	GuaranteedIncome float64        `json:"guaranteed_income"`
	ExpectedExpenses float64        `json:"expected_expenses"`
	SavingsBalance   float64        `json:"savings_balance"`
	Sources          []IncomeSource `json:"sources"`
}

type SocialSecurityData struct {
	CurrentAge              int     `json:"current_age"`
	ClaimingAge             int     `json:"claiming_age"`
	FullRetirementAge       int     `json:"full_retirement_age"`
	EstimatedMonthlyBenefit float64 `json:"estimated_monthly_benefit"`
}

type TaxData struct {
	State            string  `json:"state"`
	FilingStatus     string  `json:"filing_status"`
	EffectiveTaxRate float64 `json:"effective_tax_rate"`
	AnnualTaxBurden  float64 `json:"annual_tax_burden"`
}

type HealthcareData struct {
	HasCoverage         bool    `json:"has_coverage"`
	MedicareEnrolled    bool    `json:"medicare_enrolled"`
	MonthlyPremium      float64 `json:"monthly_premium"`
	EstimatedAnnualCost float64 `json:"estimated_annual_cost"`
}

type AbroadRelocationData struct {
	DestinationCountry   string  `json:"destination_country"`
	EstimatedMonthlyCost float64 `json:"estimated_monthly_cost"`
	ResidencyVisaPlanned bool    `json:"residency_visa_planned"`
}

type StateRelocationData struct {
	CurrentState        string  `json:"current_state"`
	TargetState         string  `json:"target_state"`
	EstimatedTaxSavings float64 `json:"estimated_tax_savings"`
}

type LongevityData struct {
	LifeExpectancy          int  `json:"life_expectancy"`
	PlanningHorizonYears    int  `json:"planning_horizon_years"`
	FamilyHistoryConsidered bool `json:"family_history_considered"`
}

type IdentityData struct {
	PostCareerGoals     []string `json:"post_career_goals"`
	SenseOfPurposeScore int      `json:"sense_of_purpose_score"`
}

type VolunteeringData struct {
	Interests     []string `json:"interests"`
	Organizations []string `json:"organizations"`
	HoursPerWeek  float64  `json:"hours_per_week"`
}

type LegacyData struct {
	EstateValue   float64  `json:"estate_value"`
	HasWill       bool     `json:"has_will"`
	HasTrust      bool     `json:"has_trust"`
	Beneficiaries []string `json:"beneficiaries"`
}

type GiftingData struct {
	AnnualGiftBudget   float64  `json:"annual_gift_budget"`
	LifetimeGiftsTotal float64  `json:"lifetime_gifts_total"`
	Recipients         []string `json:"recipients"`
}

type DigitalEstateData struct {
	AccountsInventoried  bool `json:"accounts_inventoried"`
	PasswordManagerUsed  bool `json:"password_manager_used"`
	DigitalExecutorNamed bool `json:"digital_executor_named"`
	AccountCount         int  `json:"account_count"`
}

// ToolSnapshot is the normalized, typed view of all tool data for one user.
// Built fresh on every aggregation; never mutated after construction.
type ToolSnapshot struct {
	Income           *IncomeData           `json:"income,omitempty"`
	SocialSecurity   *SocialSecurityData   `json:"social_security,omitempty"`
	Tax              *TaxData              `json:"tax,omitempty"`
	Healthcare       *HealthcareData       `json:"healthcare,omitempty"`
	AbroadRelocation *AbroadRelocationData `json:"abroad_relocation,omitempty"`
	StateRelocation  *StateRelocationData  `json:"state_relocation,omitempty"`
	Longevity        *LongevityData        `json:"longevity,omitempty"`
	Identity         *IdentityData         `json:"identity,omitempty"`
	Volunteering     *VolunteeringData     `json:"volunteering,omitempty"`
	Legacy           *LegacyData           `json:"legacy,omitempty"`
	Gifting          *GiftingData          `json:"gifting,omitempty"`
	DigitalEstate    *DigitalEstateData    `json:"digital_estate,omitempty"`

	ToolsWithData    []string             `json:"tools_with_data"`
	DataCompleteness int                  `json:"data_completeness"`
	LastUpdated      map[string]time.Time `json:"last_updated"`
}

// HasTool reports whether toolId contributed data to this snapshot.
func (s *ToolSnapshot) HasTool(toolId string) bool {
	for _, id := range s.ToolsWithData {
		if id == toolId {
			return true
		}
	}
	return false
}
