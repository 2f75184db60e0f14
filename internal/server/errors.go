// Package server provides the HTTP REST API for the counselling backend.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrProfileIncomplete indicates the student has not finished onboarding,
// so profile-dependent operations cannot run yet.
type ErrProfileIncomplete struct{}

func (e *ErrProfileIncomplete) Error() string {
	return "complete your profile to use this feature"
}

// ErrNotFound indicates a resource was not found
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrAlreadyShortlisted indicates the university is already on the shortlist
type ErrAlreadyShortlisted struct{}

func (e *ErrAlreadyShortlisted) Error() string {
	return "university is already shortlisted"
}

// ErrShortlistLocked indicates the shortlist entry has an active lock
type ErrShortlistLocked struct{}

func (e *ErrShortlistLocked) Error() string {
	return "shortlist entry is locked; unlock it first"
}

// ErrAlreadyLocked indicates the shortlist entry already has an active lock
type ErrAlreadyLocked struct{}

func (e *ErrAlreadyLocked) Error() string {
	return "shortlist entry already has an active lock"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrAlreadyShortlisted, *ErrAlreadyLocked, *ErrShortlistLocked:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrProfileIncomplete:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
