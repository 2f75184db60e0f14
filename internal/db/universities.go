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

// UniversityFilters holds optional filters for listing universities
type UniversityFilters struct {
	Country string
	Degree  types.DegreeLevel
	Field   string
	MinCost float64
	MaxCost float64
	Page    int
	Limit   int
}

// UpsertUniversity inserts a catalog record or refreshes it when a
// university with the same name and country already exists. Returns
// the record's ID.
func (db *DB) UpsertUniversity(ctx context.Context, university *types.University) (uuid.UUID, error) {
	document, err := json.Marshal(university)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal university: %w", err)
	}

	var worldRank *int
	if university.Ranking.World != nil {
		worldRank = university.Ranking.World
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO universities (name, country, tuition_min, tuition_max, acceptance_rate, world_rank, document)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (name, country) DO UPDATE
		 SET tuition_min = $3, tuition_max = $4, acceptance_rate = $5, world_rank = $6,
		     document = $7, updated_at = NOW()
		 RETURNING id`,
		university.Name, university.Country,
		university.Cost.TuitionPerYear.Min, university.Cost.TuitionPerYear.Max,
		university.AcceptanceRate, worldRank, document,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert university %s: %w", university.Name, err)
	}
	return id, nil
}

// GetUniversity retrieves one catalog record by ID. Returns nil if not found.
func (db *DB) GetUniversity(ctx context.Context, id uuid.UUID) (*types.University, error) {
	var document []byte
	var createdAt, updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT document, created_at, updated_at FROM universities WHERE id = $1`,
		id,
	).Scan(&document, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get university: %w", err)
	}

	var u types.University
	if err := json.Unmarshal(document, &u); err != nil {
		return nil, fmt.Errorf("failed to parse university document: %w", err)
	}
	u.ID = id
	u.CreatedAt, u.UpdatedAt = createdAt, updatedAt
	return &u, nil
}

// ListUniversities retrieves catalog records with optional filters and
// pagination, ordered by world rank. Returns the page plus the total
// count matching the filters.
func (db *DB) ListUniversities(ctx context.Context, filters UniversityFilters) ([]types.University, int, error) {
	if filters.Limit == 0 {
		filters.Limit = 20
	}
	if filters.Page == 0 {
		filters.Page = 1
	}

	where := " WHERE 1=1"
	args := []any{}
	argNum := 1

	if filters.Country != "" {
		where += fmt.Sprintf(" AND country = $%d", argNum)
		args = append(args, filters.Country)
		argNum++
	}
	if filters.Field != "" {
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(document->'programs') p
			WHERE p->>'field' ILIKE $%d)`, argNum)
		args = append(args, "%"+filters.Field+"%")
		argNum++
	}
	if filters.Degree != "" {
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(document->'programs') p
			WHERE p->>'degree' = $%d)`, argNum)
		args = append(args, string(filters.Degree))
		argNum++
	}
	if filters.MinCost > 0 {
		where += fmt.Sprintf(" AND tuition_min >= $%d", argNum)
		args = append(args, filters.MinCost)
		argNum++
	}
	if filters.MaxCost > 0 {
		where += fmt.Sprintf(" AND tuition_max <= $%d", argNum)
		args = append(args, filters.MaxCost)
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM universities"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count universities: %w", err)
	}

	query := "SELECT id, document, created_at, updated_at FROM universities" + where
	query += fmt.Sprintf(" ORDER BY world_rank ASC NULLS LAST, name ASC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, (filters.Page-1)*filters.Limit)

	universities, err := db.queryUniversities(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return universities, total, nil
}

// SearchUniversities matches name, country, or city case-insensitively.
func (db *DB) SearchUniversities(ctx context.Context, term string, limit int) ([]types.University, error) {
	if limit == 0 {
		limit = 20
	}
	pattern := "%" + term + "%"
	return db.queryUniversities(ctx,
		`SELECT id, document, created_at, updated_at FROM universities
		 WHERE name ILIKE $1 OR country ILIKE $1 OR document->>'city' ILIKE $1
		 ORDER BY name ASC LIMIT $2`,
		pattern, limit,
	)
}

// ListCountries returns the distinct countries in the catalog, sorted.
func (db *DB) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT DISTINCT country FROM universities ORDER BY country ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var country string
		if err := rows.Scan(&country); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, country)
	}
	return countries, nil
}

// CandidatesForProfile pre-filters the catalog for the matching
// pipeline: preferred countries, a program matching the intended
// degree and field, and tuition starting within budget. At most 50
// rows come back; ranking happens in memory afterwards.
func (db *DB) CandidatesForProfile(ctx context.Context, profile *types.StudentProfile) ([]types.University, error) {
	return db.queryUniversities(ctx,
		`SELECT id, document, created_at, updated_at FROM universities
		 WHERE country = ANY($1)
		   AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(document->'programs') p
			WHERE p->>'degree' = $2 AND p->>'field' ILIKE $3)
		   AND tuition_min <= $4
		 ORDER BY world_rank ASC NULLS LAST
		 LIMIT 50`,
		profile.PreferredCountries, string(profile.IntendedDegree),
		"%"+profile.FieldOfStudy+"%", profile.BudgetPerYear.Max,
	)
}

func (db *DB) queryUniversities(ctx context.Context, query string, args ...any) ([]types.University, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query universities: %w", err)
	}
	defer rows.Close()

	var universities []types.University
	for rows.Next() {
		var id uuid.UUID
		var document []byte
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &document, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		var u types.University
		if err := json.Unmarshal(document, &u); err != nil {
			return nil, fmt.Errorf("failed to parse university document: %w", err)
		}
		u.ID = id
		u.CreatedAt, u.UpdatedAt = createdAt, updatedAt
		universities = append(universities, u)
	}
	return universities, nil
}
