package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshay/uni-counsellor/internal/types"
)

// GetActiveConversation retrieves the student's active counsellor
// thread. Returns nil if none exists.
func (db *DB) GetActiveConversation(ctx context.Context, userID uuid.UUID) (*types.Conversation, error) {
	var conv types.Conversation
	var messages []byte
	var stage string
	var createdAt, updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT id, messages, COALESCE(stage, ''), created_at, updated_at
		 FROM conversations WHERE user_id = $1 AND is_active
		 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&conv.ID, &messages, &stage, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if err := json.Unmarshal(messages, &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to parse conversation messages: %w", err)
	}
	conv.UserID = userID
	conv.Stage = types.Stage(stage)
	conv.IsActive = true
	conv.CreatedAt, conv.UpdatedAt = createdAt, updatedAt
	return &conv, nil
}

// CreateConversation opens a new active thread for the student.
func (db *DB) CreateConversation(ctx context.Context, userID uuid.UUID, stage types.Stage) (*types.Conversation, error) {
	var id uuid.UUID
	var createdAt, updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`INSERT INTO conversations (user_id, stage)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		userID, stage,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &types.Conversation{
		ID:        id,
		UserID:    userID,
		Messages:  []types.Message{},
		Stage:     stage,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// AppendMessages adds messages to a thread and updates its stage.
func (db *DB) AppendMessages(ctx context.Context, id uuid.UUID, stage types.Stage, messages ...types.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE conversations
		 SET messages = messages || $1::jsonb, stage = $2, updated_at = NOW()
		 WHERE id = $3`,
		payload, stage, id,
	)
	if err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation not found: %s", id)
	}
	return nil
}

// DeactivateConversations closes all of the student's active threads,
// keeping the history. The next chat turn starts a fresh thread.
func (db *DB) DeactivateConversations(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE conversations SET is_active = FALSE, updated_at = NOW()
		 WHERE user_id = $1 AND is_active`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate conversations: %w", err)
	}
	return nil
}
