// Package matching implements the deterministic profile-to-university
// matching pipeline: acceptance-chance estimation, Dream/Target/Safe
// categorization, cost classification, risk identification, and the
// composite match score. Every function is a pure function of its
// inputs; missing profile or catalog fields default rather than error.
package matching

import (
	"math"

	"github.com/akshay/uni-counsellor/internal/types"
)

// Profile score contributions, out of 100.
const (
	academicMaxPoints = 40
	testPoints        = 15 // per completed test, english + standardized
	documentPoints    = 10 // per ready document group, SOP + LOR
	workExpMaxPoints  = 10
)

// profileScore computes the 0-100 readiness score used against a
// university's acceptance rate. Buckets are additive and independent.
func profileScore(profile *types.StudentProfile) float64 {
	score := 0.0

	// Academic (max 40)
	switch academic := profile.AcademicPercent(); {
	case academic >= 80:
		score += academicMaxPoints
	case academic >= 70:
		score += 30
	case academic >= 60:
		score += 20
	default:
		score += 10
	}

	// Tests (max 30)
	if profile.EnglishTest.Completed() {
		score += testPoints
	}
	if profile.StandardizedTest.Completed() {
		score += testPoints
	}

	// Documents (max 20)
	if profile.SOPStatus == types.SOPReady || profile.SOPStatus == types.SOPReview {
		score += documentPoints
	}
	if profile.LORStatus == types.LORCompleted {
		score += documentPoints
	}

	// Work experience (max 10)
	if we := profile.WorkExperience; we != nil && we.HasExperience && we.Years > 0 {
		score += math.Min(we.Years*2, workExpMaxPoints)
	}

	return score
}

// EstimateAcceptanceChance converts a student profile and a
// university's historical acceptance rate into a coarse chance label.
// The profile score is already on a 0-100 scale and is compared
// directly against the rate.
func EstimateAcceptanceChance(profile *types.StudentProfile, university *types.University) types.Chance {
	score := profileScore(profile)
	rate := university.AcceptanceRateOrDefault()

	switch {
	case score >= rate+20:
		return types.ChanceHigh
	case score >= rate-10:
		return types.ChanceMedium
	default:
		return types.ChanceLow
	}
}
