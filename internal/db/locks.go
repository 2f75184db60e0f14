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

const lockColumns = `l.id, l.user_id, l.shortlist_id, l.university_id, s.program,
	l.application_status, l.decision, l.application_deadline,
	l.is_active, l.locked_at, l.unlocked_at, COALESCE(l.unlock_reason, ''),
	l.created_at, l.updated_at, u.document`

// CreateLock promotes a shortlist entry to a committed application
// target and returns the stored lock.
func (db *DB) CreateLock(ctx context.Context, userID, shortlistID, universityID uuid.UUID, deadline *time.Time) (*types.Lock, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO locks (user_id, shortlist_id, university_id, application_deadline)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, shortlistID, universityID, deadline,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock: %w", err)
	}
	return db.GetLock(ctx, id)
}

// GetLock retrieves one lock with program and university joined in.
// Returns nil if not found.
func (db *DB) GetLock(ctx context.Context, id uuid.UUID) (*types.Lock, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+lockColumns+`
		 FROM locks l
		 JOIN shortlists s ON s.id = l.shortlist_id
		 JOIN universities u ON u.id = l.university_id
		 WHERE l.id = $1`,
		id,
	)
	lock, err := scanLock(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lock: %w", err)
	}
	return lock, nil
}

// ActiveLockExists reports whether the shortlist entry already has an
// active lock.
func (db *DB) ActiveLockExists(ctx context.Context, shortlistID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM locks WHERE shortlist_id = $1 AND is_active)`,
		shortlistID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	return exists, nil
}

// ListLocks retrieves a student's locks, newest first. With activeOnly
// set, released locks are excluded.
func (db *DB) ListLocks(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]types.Lock, error) {
	query := `SELECT ` + lockColumns + `
		FROM locks l
		JOIN shortlists s ON s.id = l.shortlist_id
		JOIN universities u ON u.id = l.university_id
		WHERE l.user_id = $1`
	if activeOnly {
		query += " AND l.is_active"
	}
	query += " ORDER BY l.locked_at DESC"

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locks: %w", err)
	}
	defer rows.Close()

	var locks []types.Lock
	for rows.Next() {
		lock, err := scanLock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lock: %w", err)
		}
		locks = append(locks, *lock)
	}
	return locks, nil
}

// CountActiveLocks returns how many active locks the student holds.
func (db *DB) CountActiveLocks(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM locks WHERE user_id = $1 AND is_active`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count locks: %w", err)
	}
	return count, nil
}

// UpdateLockStatus updates application progress on a lock.
func (db *DB) UpdateLockStatus(ctx context.Context, id uuid.UUID, req *types.UpdateLockStatusRequest) error {
	query := `UPDATE locks SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if req.ApplicationStatus != nil {
		query += fmt.Sprintf(", application_status = $%d", argNum)
		args = append(args, *req.ApplicationStatus)
		argNum++
	}
	if req.Decision != nil {
		query += fmt.Sprintf(", decision = $%d", argNum)
		args = append(args, *req.Decision)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND is_active", argNum)
	args = append(args, id)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lock status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("active lock not found: %s", id)
	}
	return nil
}

// ReleaseLock deactivates a lock, keeping it for history.
func (db *DB) ReleaseLock(ctx context.Context, id uuid.UUID, reason string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE locks
		 SET is_active = FALSE, unlocked_at = NOW(), unlock_reason = $1, updated_at = NOW()
		 WHERE id = $2 AND is_active`,
		reason, id,
	)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("active lock not found: %s", id)
	}
	return nil
}

func scanLock(row pgx.Row) (*types.Lock, error) {
	var lock types.Lock
	var document []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&lock.ID, &lock.UserID, &lock.ShortlistID, &lock.UniversityID, &lock.Program,
		&lock.ApplicationStatus, &lock.Decision, &lock.ApplicationDeadline,
		&lock.IsActive, &lock.LockedAt, &lock.UnlockedAt, &lock.UnlockReason,
		&createdAt, &updatedAt, &document)
	if err != nil {
		return nil, err
	}

	var u types.University
	if err := json.Unmarshal(document, &u); err != nil {
		return nil, fmt.Errorf("failed to parse university document: %w", err)
	}
	u.ID = lock.UniversityID
	lock.University = &u
	lock.CreatedAt, lock.UpdatedAt = createdAt, updatedAt
	return &lock, nil
}
