package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ActionType is an action the counsellor can request alongside a
// conversational reply.
type ActionType string

const (
	ActionShortlist   ActionType = "shortlist"
	ActionLock        ActionType = "lock"
	ActionCreateTask  ActionType = "create_task"
	ActionUpdateStage ActionType = "update_stage"
)

// Action is a structured side effect parsed out of an assistant reply.
type Action struct {
	Type    ActionType     `json:"type"`
	Details map[string]any `json:"details,omitempty"`
}

// Message is one turn in a counsellor conversation.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Actions   []Action    `json:"actions,omitempty"`
}

// Conversation is the active counsellor thread for a student. Only
// one conversation per student is active at a time; clearing the
// thread deactivates it rather than deleting history.
type Conversation struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Messages []Message `json:"messages"`
	Stage    Stage     `json:"stage,omitempty"`
	IsActive bool      `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatRequest is a message sent to the counsellor.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ChatResponse is the counsellor's reply.
type ChatResponse struct {
	Message        string    `json:"message"`
	Actions        []Action  `json:"actions,omitempty"`
	ConversationID uuid.UUID `json:"conversationId"`
}
