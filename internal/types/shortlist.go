package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ShortlistEntry is a student-curated university/program pair with the
// match verdict captured at shortlisting time.
type ShortlistEntry struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"userId"`
	UniversityID uuid.UUID   `json:"universityId"`
	University   *University `json:"university,omitempty"` // joined

	Program          string    `json:"program"`
	Category         Category  `json:"category"`
	AcceptanceChance Chance    `json:"acceptanceChance"`
	FitReason        string    `json:"fitReason"`
	Risks            []string  `json:"risks,omitempty"`
	CostLevel        CostLevel `json:"costLevel"`
	IsLocked         bool      `json:"isLocked"`
	AddedBy          string    `json:"addedBy"` // "User" or "AI"
	Notes            string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateShortlistRequest adds a university to the student's shortlist.
type CreateShortlistRequest struct {
	UniversityID     uuid.UUID `json:"universityId" validate:"required"`
	Program          string    `json:"program" validate:"required"`
	Category         Category  `json:"category" validate:"required,oneof=Dream Target Safe"`
	AcceptanceChance Chance    `json:"acceptanceChance" validate:"required,oneof=Low Medium High"`
	FitReason        string    `json:"fitReason" validate:"required"`
	Risks            []string  `json:"risks,omitempty"`
	CostLevel        CostLevel `json:"costLevel" validate:"required,oneof=Low Medium High"`
	Notes            string    `json:"notes,omitempty"`
}

// Validate validates the CreateShortlistRequest using the validator.
func (r *CreateShortlistRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateShortlistRequest carries partial updates to a shortlist entry.
type UpdateShortlistRequest struct {
	Category  *Category  `json:"category,omitempty" validate:"omitempty,oneof=Dream Target Safe"`
	FitReason *string    `json:"fitReason,omitempty"`
	CostLevel *CostLevel `json:"costLevel,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Notes     *string    `json:"notes,omitempty"`
}

// Validate validates the UpdateShortlistRequest using the validator.
func (r *UpdateShortlistRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ShortlistStats summarizes a student's shortlist.
type ShortlistStats struct {
	Total      int              `json:"total"`
	Locked     int              `json:"locked"`
	ByCategory map[Category]int `json:"byCategory"`
}

// ApplicationStatus tracks the lifecycle of a locked application.
type ApplicationStatus string

const (
	ApplicationNotStarted  ApplicationStatus = "Not Started"
	ApplicationInProgress  ApplicationStatus = "In Progress"
	ApplicationSubmitted   ApplicationStatus = "Submitted"
	ApplicationUnderReview ApplicationStatus = "Under Review"
	ApplicationDecided     ApplicationStatus = "Decision Received"
)

// Decision is the admission outcome for a locked application.
type Decision string

const (
	DecisionPending    Decision = "Pending"
	DecisionAccepted   Decision = "Accepted"
	DecisionRejected   Decision = "Rejected"
	DecisionWaitlisted Decision = "Waitlisted"
)

// Lock is a shortlist entry promoted to a committed application
// target. Creating one triggers task generation.
type Lock struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"userId"`
	UniversityID uuid.UUID   `json:"universityId"`
	University   *University `json:"university,omitempty"` // joined
	ShortlistID  uuid.UUID   `json:"shortlistId"`
	Program      string      `json:"program"`

	LockedAt            time.Time         `json:"lockedAt"`
	ApplicationDeadline *time.Time        `json:"applicationDeadline,omitempty"`
	ApplicationStatus   ApplicationStatus `json:"applicationStatus"`
	Decision            Decision          `json:"decision"`

	IsActive     bool       `json:"isActive"`
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
	UnlockReason string     `json:"unlockReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateLockRequest promotes a shortlist entry to a lock.
type CreateLockRequest struct {
	ShortlistID         uuid.UUID  `json:"shortlistId" validate:"required"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// Validate validates the CreateLockRequest using the validator.
func (r *CreateLockRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateLockStatusRequest updates application progress on a lock.
type UpdateLockStatusRequest struct {
	ApplicationStatus *ApplicationStatus `json:"applicationStatus,omitempty" validate:"omitempty,oneof='Not Started' 'In Progress' Submitted 'Under Review' 'Decision Received'"`
	Decision          *Decision          `json:"decision,omitempty" validate:"omitempty,oneof=Pending Accepted Rejected Waitlisted"`
}

// Validate validates the UpdateLockStatusRequest using the validator.
func (r *UpdateLockStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UnlockRequest releases a lock with an optional reason.
type UnlockRequest struct {
	Reason string `json:"reason,omitempty"`
}
