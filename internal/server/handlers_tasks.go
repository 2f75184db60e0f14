package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/akshay/uni-counsellor/internal/db"
	"github.com/akshay/uni-counsellor/internal/types"
)

// handleCreateTask creates a user-authored task.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	task, err := s.db.CreateTask(r.Context(), &types.Task{
		UserID:            userID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Priority:          req.Priority,
		DueDate:           req.DueDate,
		RelatedUniversity: req.RelatedUniversity,
		RelatedLock:       req.RelatedLock,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create task: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, task)
}

// handleListTasks lists tasks with optional status/category/priority filters.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	tasks, err := s.db.ListTasks(r.Context(), userID, db.TaskFilters{
		Status:   types.TaskStatus(q.Get("status")),
		Category: types.TaskCategory(q.Get("category")),
		Priority: types.TaskPriority(q.Get("priority")),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, tasks)
}

// handleTaskStats returns task aggregates.
func (s *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	stats, err := s.db.GetTaskStats(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleGetTask returns one task by ID.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	task, ok := s.ownedTask(w, r, id, userID)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, task)
}

// handleUpdateTask applies partial updates to a task.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	task, ok := s.ownedTask(w, r, id, userID)
	if !ok {
		return
	}

	if err := s.db.UpdateTask(r.Context(), task.ID, &req); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update task: "+err.Error())
		return
	}

	updated, err := s.db.GetTask(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleCompleteTask marks a task completed.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	task, ok := s.ownedTask(w, r, id, userID)
	if !ok {
		return
	}

	if err := s.db.CompleteTask(r.Context(), task.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to complete task: "+err.Error())
		return
	}

	completed, err := s.db.GetTask(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, completed)
}

// handleDeleteTask removes a task.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if _, ok := s.ownedTask(w, r, id, userID); !ok {
		return
	}

	if err := s.db.DeleteTask(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete task: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

// ownedTask loads a task and verifies ownership.
func (s *Server) ownedTask(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) (*types.Task, bool) {
	task, err := s.db.GetTask(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if task == nil || task.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Task not found")
		return nil, false
	}
	return task, true
}
