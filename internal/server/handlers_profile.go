package server

import (
	"encoding/json"
	"net/http"

	"github.com/akshay/uni-counsellor/internal/matching"
	"github.com/akshay/uni-counsellor/internal/types"
)

// handleGetProfile returns the student's profile document.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSaveProfile upserts the profile document. Every save recomputes
// profile strength; the first complete save finishes onboarding and
// moves the student from Building Profile to Discovering Universities.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	profile := req.ToProfile()
	profile.UserID = userID
	profile.IsOnboardingComplete = true
	profile.ProfileStrength = matching.CalculateProfileStrength(profile)

	// Stage only ever moves forward; later transitions come from
	// shortlisting and locking.
	profile.CurrentStage = types.StageDiscovering
	if existing != nil && existing.CurrentStage != "" && existing.CurrentStage != types.StageBuildingProfile {
		profile.CurrentStage = existing.CurrentStage
	}

	if err := s.db.SaveProfile(r.Context(), profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
		return
	}

	saved, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, saved)
}
