package matching

import "github.com/akshay/uni-counsellor/internal/types"

// Categorize buckets a university as Dream, Target, or Safe. Rules are
// checked in order; the first match wins. The profile is accepted for
// signature compatibility but does not influence the decision.
func Categorize(_ *types.StudentProfile, university *types.University, chance types.Chance) types.Category {
	rate := university.AcceptanceRateOrDefault()

	if rate < 20 || chance == types.ChanceLow {
		return types.CategoryDream
	}
	if chance == types.ChanceHigh || rate > 70 {
		return types.CategorySafe
	}
	return types.CategoryTarget
}
