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

const shortlistColumns = `s.id, s.user_id, s.university_id, s.program, s.category,
	COALESCE(s.acceptance_chance, ''), COALESCE(s.fit_reason, ''), s.risks,
	COALESCE(s.cost_level, ''), s.is_locked, s.added_by, COALESCE(s.notes, ''),
	s.created_at, s.updated_at, u.document`

// CreateShortlist adds a university to a student's shortlist and
// returns the stored entry.
func (db *DB) CreateShortlist(ctx context.Context, entry *types.ShortlistEntry) (*types.ShortlistEntry, error) {
	risks, err := json.Marshal(entry.Risks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal risks: %w", err)
	}
	if entry.AddedBy == "" {
		entry.AddedBy = "User"
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO shortlists (user_id, university_id, program, category, acceptance_chance,
		                         fit_reason, risks, cost_level, notes, added_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		entry.UserID, entry.UniversityID, entry.Program, entry.Category, entry.AcceptanceChance,
		entry.FitReason, risks, entry.CostLevel, entry.Notes, entry.AddedBy,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortlist entry: %w", err)
	}
	return db.GetShortlist(ctx, id)
}

// ShortlistExists reports whether the student already shortlisted this
// program at the university. Uniqueness is per program, so the same
// university can appear once per program.
func (db *DB) ShortlistExists(ctx context.Context, userID, universityID uuid.UUID, program string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shortlists WHERE user_id = $1 AND university_id = $2 AND program = $3)`,
		userID, universityID, program,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shortlist: %w", err)
	}
	return exists, nil
}

// GetShortlist retrieves one entry with its university joined in.
// Returns nil if not found.
func (db *DB) GetShortlist(ctx context.Context, id uuid.UUID) (*types.ShortlistEntry, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+shortlistColumns+`
		 FROM shortlists s JOIN universities u ON u.id = s.university_id
		 WHERE s.id = $1`,
		id,
	)
	entry, err := scanShortlist(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shortlist entry: %w", err)
	}
	return entry, nil
}

// ListShortlists retrieves a student's shortlist, optionally filtered
// by category, newest first.
func (db *DB) ListShortlists(ctx context.Context, userID uuid.UUID, category types.Category) ([]types.ShortlistEntry, error) {
	query := `SELECT ` + shortlistColumns + `
		FROM shortlists s JOIN universities u ON u.id = s.university_id
		WHERE s.user_id = $1`
	args := []any{userID}

	if category != "" {
		query += " AND s.category = $2"
		args = append(args, category)
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlists: %w", err)
	}
	defer rows.Close()

	var entries []types.ShortlistEntry
	for rows.Next() {
		entry, err := scanShortlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shortlist entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// UpdateShortlist applies partial updates to an entry.
func (db *DB) UpdateShortlist(ctx context.Context, id uuid.UUID, req *types.UpdateShortlistRequest) error {
	query := `UPDATE shortlists SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if req.Category != nil {
		query += fmt.Sprintf(", category = $%d", argNum)
		args = append(args, *req.Category)
		argNum++
	}
	if req.FitReason != nil {
		query += fmt.Sprintf(", fit_reason = $%d", argNum)
		args = append(args, *req.FitReason)
		argNum++
	}
	if req.CostLevel != nil {
		query += fmt.Sprintf(", cost_level = $%d", argNum)
		args = append(args, *req.CostLevel)
		argNum++
	}
	if req.Notes != nil {
		query += fmt.Sprintf(", notes = $%d", argNum)
		args = append(args, *req.Notes)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, id)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shortlist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("shortlist entry not found: %s", id)
	}
	return nil
}

// SetShortlistLocked flips the lock flag on an entry.
func (db *DB) SetShortlistLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE shortlists SET is_locked = $1, updated_at = NOW() WHERE id = $2`,
		locked, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set shortlist lock flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("shortlist entry not found: %s", id)
	}
	return nil
}

// DeleteShortlist removes an entry.
func (db *DB) DeleteShortlist(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM shortlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shortlist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("shortlist entry not found: %s", id)
	}
	return nil
}

// CountShortlists returns how many universities the student has shortlisted.
func (db *DB) CountShortlists(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM shortlists WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count shortlists: %w", err)
	}
	return count, nil
}

// GetShortlistStats summarizes a student's shortlist by category and lock state.
func (db *DB) GetShortlistStats(ctx context.Context, userID uuid.UUID) (*types.ShortlistStats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT category, is_locked, COUNT(*)
		 FROM shortlists WHERE user_id = $1
		 GROUP BY category, is_locked`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shortlist stats: %w", err)
	}
	defer rows.Close()

	stats := &types.ShortlistStats{ByCategory: map[types.Category]int{}}
	for rows.Next() {
		var category types.Category
		var locked bool
		var count int
		if err := rows.Scan(&category, &locked, &count); err != nil {
			return nil, fmt.Errorf("failed to scan shortlist stats: %w", err)
		}
		stats.Total += count
		stats.ByCategory[category] += count
		if locked {
			stats.Locked += count
		}
	}
	return stats, nil
}

func scanShortlist(row pgx.Row) (*types.ShortlistEntry, error) {
	var entry types.ShortlistEntry
	var risks, document []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&entry.ID, &entry.UserID, &entry.UniversityID, &entry.Program, &entry.Category,
		&entry.AcceptanceChance, &entry.FitReason, &risks,
		&entry.CostLevel, &entry.IsLocked, &entry.AddedBy, &entry.Notes,
		&createdAt, &updatedAt, &document)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(risks, &entry.Risks); err != nil {
		return nil, fmt.Errorf("failed to parse risks: %w", err)
	}
	var u types.University
	if err := json.Unmarshal(document, &u); err != nil {
		return nil, fmt.Errorf("failed to parse university document: %w", err)
	}
	u.ID = entry.UniversityID
	entry.University = &u
	entry.CreatedAt, entry.UpdatedAt = createdAt, updatedAt
	return &entry, nil
}
