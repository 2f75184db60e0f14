package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/akshay/uni-counsellor/internal/types"
)

// Match score component weights, totalling 100.
const (
	budgetFitPoints       = 30
	budgetPartialPoints   = 20
	fieldFitPoints        = 25
	chanceHighPoints      = 25
	chanceMediumPoints    = 15
	chanceLowPoints       = 5
	strengthWeight        = 0.2 // profile strength overall contributes 0-20
	comfortableBudgetFrac = 0.8
)

// matchScore computes the 0-100 composite fit score for one candidate.
func matchScore(profile *types.StudentProfile, university *types.University, chance types.Chance) int {
	score := 0.0

	// Budget fit (max 30)
	avgCost := university.Cost.TuitionPerYear.Average()
	if avgCost <= profile.BudgetPerYear.Max {
		if avgCost <= profile.BudgetPerYear.Max*comfortableBudgetFrac {
			score += budgetFitPoints
		} else {
			score += budgetPartialPoints
		}
	}

	// Field fit (25)
	if hasMatchingField(university.PopularFields, profile.FieldOfStudy) {
		score += fieldFitPoints
	}

	// Acceptance chance (always awarded)
	switch chance {
	case types.ChanceHigh:
		score += chanceHighPoints
	case types.ChanceMedium:
		score += chanceMediumPoints
	default:
		score += chanceLowPoints
	}

	// Profile strength (max 20, continuous)
	score += float64(profile.ProfileStrength.Overall) * strengthWeight

	return int(math.Round(score))
}

// hasMatchingField reports whether any catalog field contains the
// student's field of study, case-insensitively, as a substring.
func hasMatchingField(popularFields []string, fieldOfStudy string) bool {
	want := strings.ToLower(fieldOfStudy)
	for _, field := range popularFields {
		if strings.Contains(strings.ToLower(field), want) {
			return true
		}
	}
	return false
}

// MatchCandidates runs the full deterministic pipeline over a
// candidate set and returns results sorted by match score descending.
// The sort is stable: ties retain the input order, so results are
// reproducible for identical inputs.
func MatchCandidates(profile *types.StudentProfile, universities []types.University) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(universities))

	for i := range universities {
		university := &universities[i]

		chance := EstimateAcceptanceChance(profile, university)
		category := Categorize(profile, university, chance)
		costLevel := ClassifyCost(university.Cost, profile.BudgetPerYear)
		risks := IdentifyRisks(profile, university, chance, costLevel)

		results = append(results, types.MatchResult{
			University:       *university,
			AcceptanceChance: chance,
			Category:         category,
			CostLevel:        costLevel,
			Risks:            risks,
			MatchScore:       matchScore(profile, university, chance),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}
