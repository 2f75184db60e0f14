package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/akshay/uni-counsellor/internal/counsellor"
	"github.com/akshay/uni-counsellor/internal/types"
)

// handleCounsellorMessage runs one chat turn: load student state, ask
// the counsellor, persist both sides of the exchange.
func (s *Server) handleCounsellorMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	chatCtx, conversation, err := s.loadChatContext(r, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	reply, actions, err := s.counsellor.Chat(r.Context(), chatCtx, req.Message)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now().UTC()
	err = s.db.AppendMessages(r.Context(), conversation.ID, chatCtx.Stage,
		types.Message{Role: types.RoleUser, Content: req.Message, Timestamp: now},
		types.Message{Role: types.RoleAssistant, Content: reply, Timestamp: now, Actions: actions},
	)
	if err != nil {
		log.Printf("Failed to persist chat turn for %s: %v", userID, err)
	}

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{
		Message:        reply,
		Actions:        actions,
		ConversationID: conversation.ID,
	})
}

// handleGetConversation returns the active conversation, or an empty
// one if the student has never chatted.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	conversation, err := s.db.GetActiveConversation(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if conversation == nil {
		s.jsonResponse(w, http.StatusOK, types.Conversation{UserID: userID, Messages: []types.Message{}})
		return
	}

	s.jsonResponse(w, http.StatusOK, conversation)
}

// handleClearConversation deactivates the conversation; the next chat
// turn starts a fresh one.
func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.db.DeactivateConversations(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}

// handleRecommendations runs the generative recommendation path over
// the candidate query. Requires a completed profile.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil || !profile.IsOnboardingComplete {
		incomplete := &ErrProfileIncomplete{}
		s.errorResponse(w, HTTPStatus(incomplete), incomplete.Error())
		return
	}

	candidates, err := s.db.CandidatesForProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	recommendations, err := s.counsellor.Recommend(r.Context(), profile, candidates)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, recommendations)
}

// handleProfileAnalysis returns the counsellor's free-text assessment
// of the student's profile.
func (s *Server) handleProfileAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil || !profile.IsOnboardingComplete {
		incomplete := &ErrProfileIncomplete{}
		s.errorResponse(w, HTTPStatus(incomplete), incomplete.Error())
		return
	}

	analysis, err := s.counsellor.AnalyzeProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"analysis": analysis})
}

// loadChatContext gathers the student state a chat turn needs and the
// conversation to append to, creating one if none is active.
func (s *Server) loadChatContext(r *http.Request, userID uuid.UUID) (counsellor.ChatContext, *types.Conversation, error) {
	ctx := r.Context()

	profile, err := s.db.GetProfile(ctx, userID)
	if err != nil {
		return counsellor.ChatContext{}, nil, err
	}

	stage := types.StageBuildingProfile
	if profile != nil && profile.CurrentStage != "" {
		stage = profile.CurrentStage
	}

	shortlistCount, err := s.db.CountShortlists(ctx, userID)
	if err != nil {
		return counsellor.ChatContext{}, nil, err
	}
	lockCount, err := s.db.CountActiveLocks(ctx, userID)
	if err != nil {
		return counsellor.ChatContext{}, nil, err
	}

	conversation, err := s.db.GetActiveConversation(ctx, userID)
	if err != nil {
		return counsellor.ChatContext{}, nil, err
	}
	if conversation == nil {
		conversation, err = s.db.CreateConversation(ctx, userID, stage)
		if err != nil {
			return counsellor.ChatContext{}, nil, err
		}
	}

	return counsellor.ChatContext{
		Profile:        profile,
		Stage:          stage,
		ShortlistCount: shortlistCount,
		LockCount:      lockCount,
		History:        conversation.Messages,
	}, conversation, nil
}
