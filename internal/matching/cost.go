package matching

import "github.com/akshay/uni-counsellor/internal/types"

// ClassifyCost relates a university's tuition band to the student's
// yearly budget. Both boundaries are inclusive: tuition at exactly 70%
// of budget is Low, at exactly 100% is Medium.
func ClassifyCost(cost types.UniversityCost, budget types.BudgetRange) types.CostLevel {
	avgCost := cost.TuitionPerYear.Average()
	avgBudget := (budget.Min + budget.Max) / 2

	switch {
	case avgCost <= avgBudget*0.7:
		return types.CostLow
	case avgCost <= avgBudget:
		return types.CostMedium
	default:
		return types.CostHigh
	}
}
