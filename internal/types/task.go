package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskCategory groups application to-dos.
type TaskCategory string

const (
	TaskExams          TaskCategory = "Exams"
	TaskDocuments      TaskCategory = "Documents"
	TaskApplication    TaskCategory = "Application"
	TaskRecommendation TaskCategory = "Recommendation"
	TaskFinancial      TaskCategory = "Financial"
	TaskVisa           TaskCategory = "Visa"
	TaskOther          TaskCategory = "Other"
)

// TaskPriority orders tasks for the student.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

// Task is an actionable to-do, created by the student or generated by
// the counsellor when a university is locked.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`

	RelatedUniversity *uuid.UUID `json:"relatedUniversity,omitempty"`
	RelatedLock       *uuid.UUID `json:"relatedLock,omitempty"`
	GeneratedBy       string     `json:"generatedBy"` // "User" or "AI"
	Stage             Stage      `json:"stage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GeneratedTask is the shape the counsellor's task-generation prompt
// asks the model to return. DueDays is days from now, not a date.
type GeneratedTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	DueDays     *int         `json:"dueDate,omitempty"`
}

// CreateTaskRequest creates a task manually.
type CreateTaskRequest struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description,omitempty"`
	Category    TaskCategory `json:"category" validate:"required,oneof=Exams Documents Application Recommendation Financial Visa Other"`
	Priority    TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Urgent"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`

	RelatedUniversity *uuid.UUID `json:"relatedUniversity,omitempty"`
	RelatedLock       *uuid.UUID `json:"relatedLock,omitempty"`
}

// Validate validates the CreateTaskRequest using the validator.
func (r *CreateTaskRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateTaskRequest carries partial updates to a task.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *TaskCategory `json:"category,omitempty" validate:"omitempty,oneof=Exams Documents Application Recommendation Financial Visa Other"`
	Priority    *TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status      *TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}

// Validate validates the UpdateTaskRequest using the validator.
func (r *UpdateTaskRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TaskStats summarizes a student's tasks.
type TaskStats struct {
	Total      int                  `json:"total"`
	Overdue    int                  `json:"overdue"`
	ByStatus   map[TaskStatus]int   `json:"byStatus"`
	ByPriority map[TaskPriority]int `json:"byPriority"`
}
