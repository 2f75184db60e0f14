// Package counsellor implements the AI counselling layer: chat,
// university recommendations, profile analysis, and task generation.
// All model interaction goes through the llm.Client abstraction; every
// structured response is schema-validated before it is trusted.
package counsellor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/akshay/uni-counsellor/internal/llm"
	"github.com/akshay/uni-counsellor/internal/schemas"
	"github.com/akshay/uni-counsellor/internal/types"
)

const maxCandidates = 20

// Service generates counselling output from student state.
type Service struct {
	llm llm.Client
}

// NewService creates a counselling service backed by the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{llm: client}
}

// ChatContext carries the student state a chat turn is grounded in.
type ChatContext struct {
	Profile        *types.StudentProfile
	Stage          types.Stage
	ShortlistCount int
	LockCount      int
	History        []types.Message
}

// Chat produces a counsellor reply for one user message. Action markers
// embedded in the model output are parsed out and stripped from the
// visible reply.
func (s *Service) Chat(ctx context.Context, chatCtx ChatContext, userMessage string) (string, []types.Action, error) {
	prompt := buildChatPrompt(chatCtx, userMessage)

	text, err := s.llm.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", nil, fmt.Errorf("AI response generation failed: %w", err)
	}

	actions := parseActions(text)
	return cleanResponse(text), actions, nil
}

// Recommend asks the model to pick the best fits from a candidate set.
// Candidates beyond the first 20 are not shown to the model. Output
// that fails extraction, schema validation, or parsing yields an empty
// list rather than an error; only transport failures propagate.
func (s *Service) Recommend(ctx context.Context, profile *types.StudentProfile, universities []types.University) ([]types.Recommendation, error) {
	candidates := universities
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	prompt := buildRecommendationsPrompt(profile, candidates)

	text, err := s.llm.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	raw := llm.ExtractObjectArray(text)
	if raw == "" {
		log.Printf("counsellor: could not extract recommendations from model response")
		return []types.Recommendation{}, nil
	}

	if err := schemas.ValidateRecommendations(raw); err != nil {
		log.Printf("counsellor: recommendations failed schema validation: %v", err)
		return []types.Recommendation{}, nil
	}

	var recs []types.Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		log.Printf("counsellor: recommendations JSON parsing error: %v", err)
		return []types.Recommendation{}, nil
	}

	return reconcile(recs, candidates), nil
}

// AnalyzeProfile returns free-form strengths-and-gaps feedback.
func (s *Service) AnalyzeProfile(ctx context.Context, profile *types.StudentProfile) (string, error) {
	prompt := buildAnalysisPrompt(profile)

	text, err := s.llm.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("profile analysis failed: %w", err)
	}
	return text, nil
}

// GenerateTasks produces a prioritized task list for the student's
// current stage. Any failure, transport included, falls back to the
// stage's default tasks so the student is never left without a plan.
func (s *Service) GenerateTasks(ctx context.Context, profile *types.StudentProfile, stage types.Stage, lockedCount int) []types.GeneratedTask {
	prompt := buildTasksPrompt(profile, stage, lockedCount)

	// JSON response mode; no chat framing is needed here, unlike Chat
	// and Recommend where the reply doubles as counsellor prose.
	text, err := s.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Printf("counsellor: task generation error: %v", err)
		return DefaultTasks(stage)
	}

	raw := llm.ExtractObjectArray(text)
	if raw == "" {
		return DefaultTasks(stage)
	}

	if err := schemas.ValidateGeneratedTasks(raw); err != nil {
		log.Printf("counsellor: generated tasks failed schema validation: %v", err)
		return DefaultTasks(stage)
	}

	var tasks []types.GeneratedTask
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Printf("counsellor: task JSON parsing error: %v", err)
		return DefaultTasks(stage)
	}

	return tasks
}

// reconcile matches model recommendations back to the candidate set by
// name, case-insensitively. Recommendations naming a university that is
// not in the set are dropped; matches get the catalog record attached.
func reconcile(recs []types.Recommendation, candidates []types.University) []types.Recommendation {
	byName := make(map[string]*types.University, len(candidates))
	for i := range candidates {
		byName[strings.ToLower(candidates[i].Name)] = &candidates[i]
	}

	matched := make([]types.Recommendation, 0, len(recs))
	for _, rec := range recs {
		university, ok := byName[strings.ToLower(rec.UniversityName)]
		if !ok {
			continue
		}
		rec.University = university
		matched = append(matched, rec)
	}
	return matched
}
