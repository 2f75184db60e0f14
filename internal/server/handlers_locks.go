package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/akshay/uni-counsellor/internal/types"
)

// handleCreateLock locks a shortlist entry for application. The first
// lock moves the stage to Preparing Applications and asks the
// counsellor for stage tasks; task generation failures are logged and
// never fail the lock.
func (s *Server) handleCreateLock(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	entry, ok := s.ownedShortlist(w, r, req.ShortlistID, userID)
	if !ok {
		return
	}

	active, err := s.db.ActiveLockExists(r.Context(), entry.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if active {
		dup := &ErrAlreadyLocked{}
		s.errorResponse(w, HTTPStatus(dup), dup.Error())
		return
	}

	lock, err := s.db.CreateLock(r.Context(), userID, entry.ID, entry.UniversityID, req.ApplicationDeadline)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create lock: "+err.Error())
		return
	}

	if err := s.db.SetShortlistLocked(r.Context(), entry.ID, true); err != nil {
		log.Printf("Failed to flag shortlist %s as locked: %v", entry.ID, err)
	}

	s.advanceStage(r, userID, types.StageFinalizing, types.StagePreparing)
	s.generateStageTasks(r, userID, lock)

	s.jsonResponse(w, http.StatusCreated, lock)
}

// handleListLocks lists the student's locks; ?active=true restricts to
// active ones.
func (s *Server) handleListLocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	locks, err := s.db.ListLocks(r.Context(), userID, activeOnly)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, locks)
}

// handleUpdateLockStatus updates application progress on an active lock.
func (s *Server) handleUpdateLockStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateLockStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	lock, ok := s.ownedLock(w, r, id, userID)
	if !ok {
		return
	}

	if err := s.db.UpdateLockStatus(r.Context(), lock.ID, &req); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update lock: "+err.Error())
		return
	}

	updated, err := s.db.GetLock(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleUnlock releases a lock with a reason and unflags the
// shortlist entry.
func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UnlockRequest
	if r.Body != nil {
		// Reason is optional; an empty body is fine
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	lock, ok := s.ownedLock(w, r, id, userID)
	if !ok {
		return
	}

	if err := s.db.ReleaseLock(r.Context(), lock.ID, req.Reason); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to release lock: "+err.Error())
		return
	}

	if err := s.db.SetShortlistLocked(r.Context(), lock.ShortlistID, false); err != nil {
		log.Printf("Failed to unflag shortlist %s: %v", lock.ShortlistID, err)
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Lock released"})
}

// ownedLock loads a lock and verifies ownership.
func (s *Server) ownedLock(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) (*types.Lock, bool) {
	lock, err := s.db.GetLock(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if lock == nil || lock.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Lock not found")
		return nil, false
	}
	return lock, true
}

// generateStageTasks asks the counsellor for tasks appropriate to the
// student's stage after a lock and persists them as AI-generated.
func (s *Server) generateStageTasks(r *http.Request, userID uuid.UUID, lock *types.Lock) {
	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil || profile == nil {
		return
	}

	lockCount, err := s.db.CountActiveLocks(r.Context(), userID)
	if err != nil {
		lockCount = 1
	}

	generated := s.counsellor.GenerateTasks(r.Context(), profile, types.StagePreparing, lockCount)
	for _, g := range generated {
		task := &types.Task{
			UserID:            userID,
			Title:             g.Title,
			Description:       g.Description,
			Category:          g.Category,
			Priority:          g.Priority,
			RelatedUniversity: &lock.UniversityID,
			RelatedLock:       &lock.ID,
			GeneratedBy:       "AI",
			Stage:             types.StagePreparing,
		}
		if g.DueDays != nil {
			due := time.Now().AddDate(0, 0, *g.DueDays)
			task.DueDate = &due
		}
		if _, err := s.db.CreateTask(r.Context(), task); err != nil {
			log.Printf("Failed to persist generated task %q: %v", g.Title, err)
		}
	}
}
