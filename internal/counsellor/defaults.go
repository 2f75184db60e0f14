package counsellor

import "github.com/akshay/uni-counsellor/internal/types"

func intPtr(i int) *int { return &i }

// DefaultTasks returns the canned task list for a stage, used when the
// model cannot produce a usable one. Unknown stages get an empty list.
func DefaultTasks(stage types.Stage) []types.GeneratedTask {
	switch stage {
	case types.StageBuildingProfile:
		return []types.GeneratedTask{{
			Title:       "Complete your profile",
			Description: "Fill in all required information including academic background and test scores",
			Category:    types.TaskOther,
			Priority:    types.PriorityUrgent,
			DueDays:     intPtr(3),
		}}
	case types.StageDiscovering:
		return []types.GeneratedTask{{
			Title:       "Research universities",
			Description: "Browse matched universities and shortlist at least 5 options",
			Category:    types.TaskApplication,
			Priority:    types.PriorityHigh,
			DueDays:     intPtr(7),
		}}
	case types.StageFinalizing:
		return []types.GeneratedTask{{
			Title:       "Prepare English proficiency test",
			Description: "Schedule and prepare for IELTS/TOEFL examination",
			Category:    types.TaskExams,
			Priority:    types.PriorityHigh,
			DueDays:     intPtr(30),
		}}
	case types.StagePreparing:
		return []types.GeneratedTask{{
			Title:       "Draft Statement of Purpose",
			Description: "Write your SOP highlighting your goals and motivation",
			Category:    types.TaskDocuments,
			Priority:    types.PriorityUrgent,
			DueDays:     intPtr(14),
		}}
	default:
		return []types.GeneratedTask{}
	}
}
