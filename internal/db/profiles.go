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

// GetProfile retrieves a student's profile document. Returns nil if the
// student has not started onboarding.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	var document []byte
	var createdAt, updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT document, created_at, updated_at
		 FROM student_profiles WHERE user_id = $1`,
		userID,
	).Scan(&document, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.StudentProfile
	if err := json.Unmarshal(document, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile document: %w", err)
	}
	profile.UserID = userID
	profile.CreatedAt, profile.UpdatedAt = createdAt, updatedAt
	return &profile, nil
}

// SaveProfile upserts the student's profile document. The caller is
// responsible for having recomputed derived fields (profile strength,
// onboarding completion) before saving.
func (db *DB) SaveProfile(ctx context.Context, profile *types.StudentProfile) error {
	document, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO student_profiles (user_id, document)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET document = $2, updated_at = NOW()`,
		profile.UserID, document,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// UpdateStage moves the student to a new journey stage without
// rewriting the rest of the document.
func (db *DB) UpdateStage(ctx context.Context, userID uuid.UUID, stage types.Stage) error {
	stageJSON, err := json.Marshal(stage)
	if err != nil {
		return fmt.Errorf("failed to marshal stage: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE student_profiles
		 SET document = jsonb_set(document, '{currentStage}', $1), updated_at = NOW()
		 WHERE user_id = $2`,
		stageJSON, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}
