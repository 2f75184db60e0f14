package matching

import "github.com/akshay/uni-counsellor/internal/types"

// Risk messages surfaced to the student. Wording is part of the API
// contract; the frontend keys off these strings.
const (
	riskLowChance     = "Low acceptance chance based on your profile"
	riskOverBudget    = "Tuition exceeds your stated budget"
	riskEnglishTest   = "English test not completed - required for application"
	riskSOPNotStarted = "Statement of Purpose not started"
	riskSelective     = "Highly competitive university - very selective admission"
)

// IdentifyRisks produces human-readable caveats for one candidate.
// Each trigger is evaluated independently in a fixed order; an empty
// list is a valid result.
func IdentifyRisks(profile *types.StudentProfile, university *types.University, chance types.Chance, costLevel types.CostLevel) []string {
	risks := []string{}

	if chance == types.ChanceLow {
		risks = append(risks, riskLowChance)
	}
	if costLevel == types.CostHigh {
		risks = append(risks, riskOverBudget)
	}
	if !profile.EnglishTest.Completed() {
		risks = append(risks, riskEnglishTest)
	}
	if profile.SOPStatus == types.SOPNotStarted {
		risks = append(risks, riskSOPNotStarted)
	}
	if university.AcceptanceRateOrDefault() < 15 {
		risks = append(risks, riskSelective)
	}

	return risks
}
