package matching

import (
	"math"

	"github.com/akshay/uni-counsellor/internal/types"
)

// Sub-score weights for the overall profile strength blend.
const (
	academicWeight = 0.4
	examWeight     = 0.3
	documentWeight = 0.3
)

// CalculateProfileStrength derives the 0-100 readiness composite
// stored on the profile. Sub-scores are step functions, not continuous:
// academic maps to {25,50,75,100} (0 when no score, or only zeros,
// are present), exam
// and document map to {0,50,100} depending on how many of the two
// items in each group are done. Recomputed on every profile write so
// the figure stays consistent across the app.
func CalculateProfileStrength(profile *types.StudentProfile) types.ProfileStrength {
	academicScore := 0
	if academic := profile.AcademicPercent(); academic > 0 {
		switch {
		case academic >= 80:
			academicScore = 100
		case academic >= 70:
			academicScore = 75
		case academic >= 60:
			academicScore = 50
		default:
			academicScore = 25
		}
	}

	examScore := 0
	englishDone := profile.EnglishTest.Completed()
	standardizedDone := profile.StandardizedTest.Completed()
	switch {
	case englishDone && standardizedDone:
		examScore = 100
	case englishDone || standardizedDone:
		examScore = 50
	}

	documentScore := 0
	sopReady := profile.SOPStatus == types.SOPReady || profile.SOPStatus == types.SOPReview
	lorDone := profile.LORStatus == types.LORCompleted
	switch {
	case sopReady && lorDone:
		documentScore = 100
	case sopReady || lorDone:
		documentScore = 50
	}

	overall := int(math.Round(
		float64(academicScore)*academicWeight +
			float64(examScore)*examWeight +
			float64(documentScore)*documentWeight,
	))

	return types.ProfileStrength{
		Overall:  overall,
		Academic: academicScore,
		Exam:     examScore,
		Document: documentScore,
	}
}
