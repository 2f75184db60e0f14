package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshay/uni-counsellor/internal/types"
)

// TaskFilters holds optional filters for listing tasks
type TaskFilters struct {
	Status   types.TaskStatus
	Category types.TaskCategory
	Priority types.TaskPriority
}

const taskColumns = `id, user_id, title, COALESCE(description, ''), category, priority, status,
	due_date, completed_at, related_university, related_lock, generated_by, COALESCE(stage, ''),
	created_at, updated_at`

// CreateTask inserts a task and returns the stored record.
func (db *DB) CreateTask(ctx context.Context, task *types.Task) (*types.Task, error) {
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	if task.Status == "" {
		task.Status = types.TaskPending
	}
	if task.GeneratedBy == "" {
		task.GeneratedBy = "User"
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, category, priority, status,
		                    due_date, related_university, related_lock, generated_by, stage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		task.UserID, task.Title, task.Description, task.Category, task.Priority, task.Status,
		task.DueDate, task.RelatedUniversity, task.RelatedLock, task.GeneratedBy, task.Stage,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return db.GetTask(ctx, id)
}

// GetTask retrieves one task. Returns nil if not found.
func (db *DB) GetTask(ctx context.Context, id uuid.UUID) (*types.Task, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id,
	)
	task, err := scanTask(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves a student's tasks with optional filters, ordered
// by due date with undated tasks last.
func (db *DB) ListTasks(ctx context.Context, userID uuid.UUID, filters TaskFilters) ([]types.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}
	if filters.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argNum)
		args = append(args, filters.Priority)
	}

	query += " ORDER BY due_date ASC NULLS LAST, created_at DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// ListPendingTasks retrieves the next open tasks by due date, for the
// dashboard.
func (db *DB) ListPendingTasks(ctx context.Context, userID uuid.UUID, limit int) ([]types.Task, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND status IN ($2, $3)
		 ORDER BY due_date ASC NULLS LAST, created_at DESC
		 LIMIT $4`,
		userID, types.TaskPending, types.TaskInProgress, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// UpdateTask applies partial updates to a task.
func (db *DB) UpdateTask(ctx context.Context, id uuid.UUID, req *types.UpdateTaskRequest) error {
	query := `UPDATE tasks SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if req.Title != nil {
		query += fmt.Sprintf(", title = $%d", argNum)
		args = append(args, *req.Title)
		argNum++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argNum)
		args = append(args, *req.Description)
		argNum++
	}
	if req.Category != nil {
		query += fmt.Sprintf(", category = $%d", argNum)
		args = append(args, *req.Category)
		argNum++
	}
	if req.Priority != nil {
		query += fmt.Sprintf(", priority = $%d", argNum)
		args = append(args, *req.Priority)
		argNum++
	}
	if req.Status != nil {
		query += fmt.Sprintf(", status = $%d", argNum)
		args = append(args, *req.Status)
		argNum++
		if *req.Status == types.TaskCompleted {
			query += ", completed_at = NOW()"
		} else {
			query += ", completed_at = NULL"
		}
	}
	if req.DueDate != nil {
		query += fmt.Sprintf(", due_date = $%d", argNum)
		args = append(args, *req.DueDate)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, id)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// CompleteTask marks a task done.
func (db *DB) CompleteTask(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE tasks SET status = $1, completed_at = NOW(), updated_at = NOW() WHERE id = $2`,
		types.TaskCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// GetTaskStats summarizes a student's tasks. Overdue counts tasks past
// their due date that are neither completed nor cancelled.
func (db *DB) GetTaskStats(ctx context.Context, userID uuid.UUID) (*types.TaskStats, error) {
	stats := &types.TaskStats{
		ByStatus:   map[types.TaskStatus]int{},
		ByPriority: map[types.TaskPriority]int{},
	}

	rows, err := db.pool.Query(ctx,
		`SELECT status, priority, COUNT(*),
		        COUNT(*) FILTER (WHERE due_date < NOW() AND status NOT IN ($2, $3))
		 FROM tasks WHERE user_id = $1
		 GROUP BY status, priority`,
		userID, types.TaskCompleted, types.TaskCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get task stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status types.TaskStatus
		var priority types.TaskPriority
		var count, overdue int
		if err := rows.Scan(&status, &priority, &count, &overdue); err != nil {
			return nil, fmt.Errorf("failed to scan task stats: %w", err)
		}
		stats.Total += count
		stats.Overdue += overdue
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
	}
	return stats, nil
}

func scanTask(row pgx.Row) (*types.Task, error) {
	var task types.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Category, &task.Priority, &task.Status,
		&task.DueDate, &task.CompletedAt, &task.RelatedUniversity, &task.RelatedLock,
		&task.GeneratedBy, &task.Stage, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
