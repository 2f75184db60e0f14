package counsellor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akshay/uni-counsellor/internal/llm"
	"github.com/akshay/uni-counsellor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func floatPtr(f float64) *float64 { return &f }

func testProfile() *types.StudentProfile {
	return &types.StudentProfile{
		Degree:             "B.Tech",
		Major:              "Computer Science",
		GraduationYear:     2025,
		GPA:                floatPtr(8.5),
		IntendedDegree:     types.DegreeMasters,
		FieldOfStudy:       "Computer Science",
		PreferredCountries: []string{"Canada", "Germany"},
		BudgetPerYear:      types.BudgetRange{Min: 10000, Max: 30000, Currency: "USD"},
		EnglishTest:        &types.TestRecord{Type: "IELTS", Status: types.TestCompleted, Score: floatPtr(7.5)},
		SOPStatus:          types.SOPDraft,
		LORStatus:          types.LORNotStarted,
	}
}

func testCandidates() []types.University {
	return []types.University{
		{
			Name:           "University of Toronto",
			Country:        "Canada",
			AcceptanceRate: floatPtr(43),
			Cost:           types.UniversityCost{TuitionPerYear: types.TuitionRange{Min: 25000, Max: 35000, Currency: "USD"}},
		},
		{
			Name:           "TU Munich",
			Country:        "Germany",
			AcceptanceRate: floatPtr(8),
			Cost:           types.UniversityCost{TuitionPerYear: types.TuitionRange{Min: 0, Max: 500, Currency: "EUR"}},
		},
	}
}

func TestRecommend_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			assert.Contains(t, prompt, "University of Toronto")
			assert.Contains(t, prompt, "Master's")
			return `Here are my picks:
[
  {
    "universityName": "university of toronto",
    "category": "Target",
    "acceptanceChance": "Medium",
    "fitReason": "Strong CS program.",
    "risks": ["Competitive program"],
    "costLevel": "Medium"
  },
  {
    "universityName": "Unknown College",
    "category": "Safe",
    "acceptanceChance": "High",
    "fitReason": "Made up by the model.",
    "risks": [],
    "costLevel": "Low"
  }
]`, nil
		},
	}

	service := NewService(mockClient)
	recs, err := service.Recommend(context.Background(), testProfile(), testCandidates())
	require.NoError(t, err)

	// The hallucinated university is dropped; the real one keeps its
	// catalog record despite the case difference in the name.
	require.Len(t, recs, 1)
	assert.Equal(t, "university of toronto", recs[0].UniversityName)
	require.NotNil(t, recs[0].University)
	assert.Equal(t, "University of Toronto", recs[0].University.Name)
	assert.Equal(t, types.CategoryTarget, recs[0].Category)
}

func TestRecommend_UnparsableResponse(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "I'm sorry, I cannot produce recommendations right now.", nil
		},
	}

	service := NewService(mockClient)
	recs, err := service.Recommend(context.Background(), testProfile(), testCandidates())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_SchemaViolation(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			// "Reach" is not a valid category
			return `[{"universityName": "TU Munich", "category": "Reach", "acceptanceChance": "Low", "fitReason": "x", "costLevel": "Low"}]`, nil
		},
	}

	service := NewService(mockClient)
	recs, err := service.Recommend(context.Background(), testProfile(), testCandidates())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_APIError(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	service := NewService(mockClient)
	_, err := service.Recommend(context.Background(), testProfile(), testCandidates())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate recommendations")
}

func TestRecommend_TruncatesCandidateList(t *testing.T) {
	universities := make([]types.University, 30)
	for i := range universities {
		universities[i] = types.University{Name: "University " + string(rune('A'+i)), Country: "X"}
	}

	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			assert.Contains(t, prompt, "20. ")
			assert.NotContains(t, prompt, "21. ")
			return "[]", nil
		},
	}

	service := NewService(mockClient)
	_, err := service.Recommend(context.Background(), testProfile(), universities)
	require.NoError(t, err)
}

func TestChat_StripsActionMarkers(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			assert.Contains(t, prompt, "Study Abroad Counsellor")
			assert.Contains(t, prompt, "User: Which universities fit me?")
			return `I suggest adding TU Munich to your list. SHORTLIST_UNIVERSITY[{"name": "TU Munich"}] Good luck!`, nil
		},
	}

	service := NewService(mockClient)
	chatCtx := ChatContext{
		Profile: testProfile(),
		Stage:   types.StageDiscovering,
	}

	message, actions, err := service.Chat(context.Background(), chatCtx, "Which universities fit me?")
	require.NoError(t, err)

	assert.Equal(t, "I suggest adding TU Munich to your list.  Good luck!", message)
	require.Len(t, actions, 1)
	assert.Equal(t, types.ActionShortlist, actions[0].Type)
	assert.Equal(t, "TU Munich", actions[0].Details["name"])
}

func TestChat_IncludesRecentHistory(t *testing.T) {
	history := make([]types.Message, 15)
	for i := range history {
		history[i] = types.Message{Role: types.RoleUser, Content: "message-" + string(rune('a'+i))}
	}

	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			// Only the last 10 turns are carried
			assert.NotContains(t, prompt, "message-a")
			assert.Contains(t, prompt, "message-o")
			return "Sure.", nil
		},
	}

	service := NewService(mockClient)
	chatCtx := ChatContext{Profile: testProfile(), Stage: types.StageDiscovering, History: history}

	_, _, err := service.Chat(context.Background(), chatCtx, "next?")
	require.NoError(t, err)
}

func TestChat_APIError(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("connection reset")
		},
	}

	service := NewService(mockClient)
	_, _, err := service.Chat(context.Background(), ChatContext{Profile: testProfile()}, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI response generation failed")
}

func TestAnalyzeProfile(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierAdvanced, tier)
			assert.Contains(t, prompt, "B.Tech")
			assert.Contains(t, prompt, "IELTS - Completed (Score: 7.5)")
			return "Your profile is strong overall.", nil
		},
	}

	service := NewService(mockClient)
	analysis, err := service.AnalyzeProfile(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Equal(t, "Your profile is strong overall.", analysis)
}

func TestGenerateTasks_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			t.Fatal("task generation should use JSON response mode")
			return "", nil
		},
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			assert.Contains(t, prompt, "Preparing Applications")
			return `[
  {"title": "Request transcripts", "description": "Ask your university registrar", "category": "Documents", "priority": "High", "dueDate": 10},
  {"title": "Book IELTS retake", "description": "Improve band score", "category": "Exams", "priority": "Medium", "dueDate": null}
]`, nil
		},
	}

	service := NewService(mockClient)
	tasks := service.GenerateTasks(context.Background(), testProfile(), types.StagePreparing, 2)

	require.Len(t, tasks, 2)
	assert.Equal(t, "Request transcripts", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDays)
	assert.Equal(t, 10, *tasks[0].DueDays)
	assert.Nil(t, tasks[1].DueDays)
}

func TestGenerateTasks_FallsBackOnAPIError(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("timeout")
		},
	}

	service := NewService(mockClient)
	tasks := service.GenerateTasks(context.Background(), testProfile(), types.StagePreparing, 0)

	require.Len(t, tasks, 1)
	assert.Equal(t, "Draft Statement of Purpose", tasks[0].Title)
}

func TestGenerateTasks_FallsBackOnGarbage(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "no structured output here", nil
		},
	}

	service := NewService(mockClient)
	tasks := service.GenerateTasks(context.Background(), testProfile(), types.StageDiscovering, 0)

	require.Len(t, tasks, 1)
	assert.Equal(t, "Research universities", tasks[0].Title)
}

func TestDefaultTasks_UnknownStage(t *testing.T) {
	tasks := DefaultTasks(types.Stage("Graduated"))
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestParseActions(t *testing.T) {
	text := `Let's plan. CREATE_TASK[{"title": "Book IELTS"}] Also UPDATE_STAGE[Finalizing Universities]`

	actions := parseActions(text)
	require.Len(t, actions, 2)

	assert.Equal(t, types.ActionCreateTask, actions[0].Type)
	assert.Equal(t, "Book IELTS", actions[0].Details["title"])

	assert.Equal(t, types.ActionUpdateStage, actions[1].Type)
	assert.Equal(t, "Finalizing Universities", actions[1].Details["value"])
}

func TestParseActions_NoMarkers(t *testing.T) {
	assert.Empty(t, parseActions("Just a normal reply."))
}

func TestCleanResponse(t *testing.T) {
	text := "Before SHORTLIST_UNIVERSITY[x] middle CREATE_TASK[y] after"
	cleaned := cleanResponse(text)
	assert.False(t, strings.Contains(cleaned, "SHORTLIST_UNIVERSITY"))
	assert.False(t, strings.Contains(cleaned, "CREATE_TASK"))
	assert.True(t, strings.HasPrefix(cleaned, "Before"))
	assert.True(t, strings.HasSuffix(cleaned, "after"))
}
