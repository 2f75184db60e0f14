package counsellor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akshay/uni-counsellor/internal/prompts"
	"github.com/akshay/uni-counsellor/internal/types"
)

const promptFile = "counsellor.json"

// historyWindow limits how many prior messages a chat turn carries.
const historyWindow = 10

func buildChatPrompt(chatCtx ChatContext, userMessage string) string {
	profile := chatCtx.Profile

	completion := "Incomplete"
	strength := "0"
	degree := "Not specified"
	field := "Not specified"
	countries := "Not specified"
	budgetMin, budgetMax := "0", "0"
	currency := "USD"

	if profile != nil {
		if profile.IsOnboardingComplete {
			completion = "Complete"
		}
		strength = strconv.Itoa(profile.ProfileStrength.Overall)
		if profile.IntendedDegree != "" {
			degree = string(profile.IntendedDegree)
		}
		if profile.FieldOfStudy != "" {
			field = profile.FieldOfStudy
		}
		if len(profile.PreferredCountries) > 0 {
			countries = strings.Join(profile.PreferredCountries, ", ")
		}
		budgetMin = formatNumber(profile.BudgetPerYear.Min)
		budgetMax = formatNumber(profile.BudgetPerYear.Max)
		if profile.BudgetPerYear.Currency != "" {
			currency = profile.BudgetPerYear.Currency
		}
	}

	stage := chatCtx.Stage
	if stage == "" {
		stage = types.StageBuildingProfile
	}

	context := prompts.Format(prompts.MustGet(promptFile, "chat-context"), map[string]string{
		"Stage":             string(stage),
		"ProfileCompletion": completion,
		"ProfileStrength":   strength,
		"ShortlistCount":    strconv.Itoa(chatCtx.ShortlistCount),
		"LockCount":         strconv.Itoa(chatCtx.LockCount),
		"IntendedDegree":    degree,
		"FieldOfStudy":      field,
		"Countries":         countries,
		"BudgetMin":         budgetMin,
		"BudgetMax":         budgetMax,
		"Currency":          currency,
	})

	var sb strings.Builder
	sb.WriteString(prompts.MustGet(promptFile, "system"))
	sb.WriteString("\n\n")
	sb.WriteString(context)

	history := chatCtx.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:")
		for _, msg := range history {
			role := "User"
			if msg.Role == types.RoleAssistant {
				role = "Counsellor"
			}
			sb.WriteString(fmt.Sprintf("\n%s: %s", role, msg.Content))
		}
	}

	sb.WriteString("\n\nUser: ")
	sb.WriteString(userMessage)
	return sb.String()
}

func buildRecommendationsPrompt(profile *types.StudentProfile, universities []types.University) string {
	var lines []string
	for i, u := range universities {
		tuition := "N/A-N/A"
		currency := "USD"
		if t := u.Cost.TuitionPerYear; t.Min != 0 || t.Max != 0 {
			tuition = formatNumber(t.Min) + "-" + formatNumber(t.Max)
			if t.Currency != "" {
				currency = t.Currency
			}
		}
		rate := "N/A"
		if u.AcceptanceRate != nil {
			rate = formatNumber(*u.AcceptanceRate)
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s) - Tuition: %s %s, Acceptance Rate: %s%%",
			i+1, u.Name, u.Country, tuition, currency, rate))
	}

	academic := "N/A"
	if profile.GPA != nil {
		academic = formatNumber(*profile.GPA)
	} else if profile.Percentage != nil {
		academic = formatNumber(*profile.Percentage)
	}

	return prompts.Format(prompts.MustGet(promptFile, "recommendations"), map[string]string{
		"IntendedDegree":   string(profile.IntendedDegree),
		"FieldOfStudy":     profile.FieldOfStudy,
		"AcademicScore":    academic,
		"Currency":         currencyOrDefault(profile.BudgetPerYear.Currency),
		"BudgetMin":        formatNumber(profile.BudgetPerYear.Min),
		"BudgetMax":        formatNumber(profile.BudgetPerYear.Max),
		"Countries":        strings.Join(profile.PreferredCountries, ", "),
		"EnglishTest":      testSummary(profile.EnglishTest),
		"StandardizedTest": testSummary(profile.StandardizedTest),
		"UniversityList":   strings.Join(lines, "\n"),
	})
}

func buildAnalysisPrompt(profile *types.StudentProfile) string {
	gpa := "N/A"
	if profile.GPA != nil {
		gpa = formatNumber(*profile.GPA)
	}
	percentage := "N/A"
	if profile.Percentage != nil {
		percentage = formatNumber(*profile.Percentage)
	}

	work := "No"
	if profile.WorkExperience != nil && profile.WorkExperience.HasExperience {
		work = fmt.Sprintf("Yes, %s years", formatNumber(profile.WorkExperience.Years))
	}

	return prompts.Format(prompts.MustGet(promptFile, "analysis"), map[string]string{
		"Degree":           profile.Degree,
		"Major":            profile.Major,
		"GPA":              gpa,
		"Percentage":       percentage,
		"GraduationYear":   strconv.Itoa(profile.GraduationYear),
		"EnglishTest":      testSummary(profile.EnglishTest),
		"StandardizedTest": testSummary(profile.StandardizedTest),
		"SOPStatus":        string(profile.SOPStatus),
		"LORStatus":        string(profile.LORStatus),
		"WorkExperience":   work,
		"IntendedDegree":   string(profile.IntendedDegree),
		"FieldOfStudy":     profile.FieldOfStudy,
		"Countries":        strings.Join(profile.PreferredCountries, ", "),
		"BudgetMin":        formatNumber(profile.BudgetPerYear.Min),
		"BudgetMax":        formatNumber(profile.BudgetPerYear.Max),
		"Currency":         currencyOrDefault(profile.BudgetPerYear.Currency),
	})
}

func buildTasksPrompt(profile *types.StudentProfile, stage types.Stage, lockedCount int) string {
	return prompts.Format(prompts.MustGet(promptFile, "tasks"), map[string]string{
		"Stage":              string(stage),
		"EnglishStatus":      testStatus(profile.EnglishTest),
		"StandardizedStatus": testStatus(profile.StandardizedTest),
		"SOPStatus":          string(profile.SOPStatus),
		"LORStatus":          string(profile.LORStatus),
		"LockedCount":        strconv.Itoa(lockedCount),
	})
}

// testSummary renders a test record for prompt context, e.g.
// "IELTS - Completed (Score: 7.5)" or "None - N/A".
func testSummary(record *types.TestRecord) string {
	if record == nil || record.Type == "" {
		return "None - N/A"
	}
	summary := fmt.Sprintf("%s - %s", record.Type, record.Status)
	if record.Score != nil {
		summary += fmt.Sprintf(" (Score: %s)", formatNumber(*record.Score))
	}
	return summary
}

func testStatus(record *types.TestRecord) string {
	if record == nil || record.Status == "" {
		return string(types.TestNotStarted)
	}
	return string(record.Status)
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
