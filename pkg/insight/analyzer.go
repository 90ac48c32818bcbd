package insight

import (
	"fmt"
	"sort"

	"ai-retirement-be/pkg/tooldata"
)

// minToolsForCrossRules gates the pairwise rules: with fewer than two populated
// domains every cross-tool correlation would be spurious.
const minToolsForCrossRules = 2

// Analyze scans the snapshot and returns a prioritized, quantified insight list.
// Pure: same snapshot in, same insights out, in the same order.
func Analyze(snapshot *tooldata.ToolSnapshot) []Insight {
	insights := []Insight{}

	if len(snapshot.ToolsWithData) < minToolsForCrossRules {
		insights = append(insights, getStartedInsight(snapshot))
		sortInsights(insights)
		return insights
	}

	for _, r := range crossToolRules {
		if result := r(snapshot); result != nil {
			insights = append(insights, *result)
		}
	}

	if snapshot.DataCompleteness < 50 {
		insights = append(insights, moreDataInsight(snapshot))
	}

	sortInsights(insights)
	return insights
}

// sortInsights orders by priority rank, then impact, then id. The id tiebreak
// is not part of the contract but keeps the output fully deterministic.
func sortInsights(insights []Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		ri, rj := priorityRank[insights[i].Priority], priorityRank[insights[j].Priority]
		if ri != rj {
			return ri > rj
		}
		if insights[i].PotentialImpact != insights[j].PotentialImpact {
			return insights[i].PotentialImpact > insights[j].PotentialImpact
		}
		return insights[i].Id < insights[j].Id
	})
}

func getStartedInsight(s *tooldata.ToolSnapshot) Insight {
	return Insight{
		Id:       "get-started",
		Priority: PriorityMedium,
		Title:    "Add data to unlock cross-tool analysis",
		Description: fmt.Sprintf(
			"Only %d of %d planning tools have data. Cross-tool opportunities (tax vs relocation, income vs claiming age) need at least two; start with the income estimator and tax analyzer.",
			len(s.ToolsWithData), len(tooldata.KnownTools)),
		PotentialImpact: 0,
		RelatedTools:    []string{tooldata.ToolIncome, tooldata.ToolTax},
	}
}

func moreDataInsight(s *tooldata.ToolSnapshot) Insight {
	missing := []string{}
	for _, id := range tooldata.KnownTools {
		if !s.HasTool(id) {
			missing = append(missing, id)
		}
	}

	return Insight{
		Id:       "expand-coverage",
		Priority: PriorityLow,
		Title:    "Your plan is missing over half its inputs",
		Description: fmt.Sprintf(
			"Data completeness is %d%%. Each additional tool sharpens the analysis; %d tools are still empty.",
			s.DataCompleteness, len(missing)),
		PotentialImpact: 0,
		RelatedTools:    missing,
	}
}
