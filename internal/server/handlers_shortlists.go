package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/akshay/uni-counsellor/internal/types"
)

// handleCreateShortlist adds a university to the student's shortlist.
// The first entry moves the stage from Discovering Universities to
// Finalizing Universities.
func (s *Server) handleCreateShortlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	university, err := s.db.GetUniversity(r.Context(), req.UniversityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if university == nil {
		s.errorResponse(w, http.StatusNotFound, "University not found")
		return
	}

	exists, err := s.db.ShortlistExists(r.Context(), userID, req.UniversityID, req.Program)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if exists {
		dup := &ErrAlreadyShortlisted{}
		s.errorResponse(w, HTTPStatus(dup), dup.Error())
		return
	}

	risks := req.Risks
	if risks == nil {
		risks = []string{}
	}
	entry, err := s.db.CreateShortlist(r.Context(), &types.ShortlistEntry{
		UserID:           userID,
		UniversityID:     req.UniversityID,
		Program:          req.Program,
		Category:         req.Category,
		AcceptanceChance: req.AcceptanceChance,
		FitReason:        req.FitReason,
		Risks:            risks,
		CostLevel:        req.CostLevel,
		Notes:            req.Notes,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create shortlist entry: "+err.Error())
		return
	}

	s.advanceStage(r, userID, types.StageDiscovering, types.StageFinalizing)

	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleListShortlists lists the student's shortlist, optionally by category.
func (s *Server) handleListShortlists(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	category := types.Category(r.URL.Query().Get("category"))
	entries, err := s.db.ListShortlists(r.Context(), userID, category)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, entries)
}

// handleShortlistStats returns shortlist aggregates by category.
func (s *Server) handleShortlistStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	stats, err := s.db.GetShortlistStats(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleUpdateShortlist applies partial updates to a shortlist entry.
func (s *Server) handleUpdateShortlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	entry, ok := s.ownedShortlist(w, r, id, userID)
	if !ok {
		return
	}

	if err := s.db.UpdateShortlist(r.Context(), entry.ID, &req); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update shortlist entry: "+err.Error())
		return
	}

	updated, err := s.db.GetShortlist(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteShortlist removes a shortlist entry. Locked entries must
// be unlocked first.
func (s *Server) handleDeleteShortlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	entry, ok := s.ownedShortlist(w, r, id, userID)
	if !ok {
		return
	}
	if entry.IsLocked {
		locked := &ErrShortlistLocked{}
		s.errorResponse(w, HTTPStatus(locked), locked.Error())
		return
	}

	if err := s.db.DeleteShortlist(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete shortlist entry: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Shortlist entry removed"})
}

// ownedShortlist loads a shortlist entry and verifies ownership.
func (s *Server) ownedShortlist(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) (*types.ShortlistEntry, bool) {
	entry, err := s.db.GetShortlist(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if entry == nil || entry.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Shortlist entry not found")
		return nil, false
	}
	return entry, true
}

// advanceStage moves the student's stage forward when the current stage
// matches. Failures are logged, never surfaced; stage bookkeeping must
// not break the main operation.
func (s *Server) advanceStage(r *http.Request, userID uuid.UUID, from, to types.Stage) {
	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil || profile == nil {
		return
	}
	if profile.CurrentStage != from {
		return
	}
	if err := s.db.UpdateStage(r.Context(), userID, to); err != nil {
		log.Printf("Failed to advance stage for %s: %v", userID, err)
	}
}
