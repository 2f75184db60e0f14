package matching

import (
	"testing"

	"github.com/akshay/uni-counsellor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestIdentifyRisks_NoneTriggered(t *testing.T) {
	p := &types.StudentProfile{
		EnglishTest: completedTest(),
		SOPStatus:   types.SOPReady,
	}
	got := IdentifyRisks(p, uniWithRate(50), types.ChanceHigh, types.CostLow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIdentifyRisks_AllTriggered(t *testing.T) {
	p := &types.StudentProfile{SOPStatus: types.SOPNotStarted}
	got := IdentifyRisks(p, uniWithRate(10), types.ChanceLow, types.CostHigh)

	assert.Equal(t, []string{
		riskLowChance,
		riskOverBudget,
		riskEnglishTest,
		riskSOPNotStarted,
		riskSelective,
	}, got)
}

func TestIdentifyRisks_IndividualTriggers(t *testing.T) {
	base := &types.StudentProfile{
		EnglishTest: completedTest(),
		SOPStatus:   types.SOPReady,
	}

	tests := []struct {
		name      string
		profile   *types.StudentProfile
		rate      float64
		chance    types.Chance
		costLevel types.CostLevel
		want      []string
	}{
		{"low chance", base, 50, types.ChanceLow, types.CostLow, []string{riskLowChance}},
		{"over budget", base, 50, types.ChanceMedium, types.CostHigh, []string{riskOverBudget}},
		{
			"english test pending",
			&types.StudentProfile{
				EnglishTest: &types.TestRecord{Type: "IELTS", Status: types.TestScheduled},
				SOPStatus:   types.SOPReady,
			},
			50, types.ChanceMedium, types.CostLow,
			[]string{riskEnglishTest},
		},
		{
			"no english test record at all",
			&types.StudentProfile{SOPStatus: types.SOPReady},
			50, types.ChanceMedium, types.CostLow,
			[]string{riskEnglishTest},
		},
		{
			"sop not started",
			&types.StudentProfile{EnglishTest: completedTest(), SOPStatus: types.SOPNotStarted},
			50, types.ChanceMedium, types.CostLow,
			[]string{riskSOPNotStarted},
		},
		{"selective below 15", base, 14, types.ChanceMedium, types.CostLow, []string{riskSelective}},
		{"rate 15 is not flagged selective", base, 15, types.ChanceMedium, types.CostLow, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyRisks(tt.profile, uniWithRate(tt.rate), tt.chance, tt.costLevel)
			assert.Equal(t, tt.want, got)
		})
	}
}
