// Package repository implements the database access layer for ProjectBoard.
// This file handles task CRUD operations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/jackc/pgx/v5"
)

// TaskRepository handles task-related database operations.
// Tasks can be created under active or closed projects; no status guard is
// enforced here.
type TaskRepository struct{}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindByID retrieves a single task enriched with its live item counts.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - id: Task's unique identifier
//
// Returns:
//   - *models.TaskWithStats: Task row with total/completed item counts
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
//
// Database: LEFT JOIN with items so a task with zero items still returns a
// row with both counts at 0.
func (r *TaskRepository) FindByID(ctx context.Context, id int) (*models.TaskWithStats, error) {
	query := `
		SELECT t.id, t.project_id, t.name, t.description, t.created_at, t.updated_at,
		       COUNT(i.id) AS total_items,
		       COUNT(CASE WHEN i.status = 'completed' THEN 1 END) AS completed_items
		FROM tasks t
		LEFT JOIN items i ON t.id = i.task_id
		WHERE t.id = $1
		GROUP BY t.id
	`

	var t models.TaskWithStats
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		&t.TotalItems, &t.CompletedItems,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Create inserts a new task under a project.
//
// Side Effects: Populates task.ID, CreatedAt and UpdatedAt with database
// values. A foreign key violation surfaces if project_id doesn't exist.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (project_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return database.DB.QueryRow(ctx, query, task.ProjectID, task.Name, task.Description).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// Update applies a partial update to a task's name and description.
// Nil fields leave the column unchanged via COALESCE.
//
// Returns:
//   - *models.Task: The updated row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *TaskRepository) Update(ctx context.Context, id int, req models.UpdateTaskRequest) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, project_id, name, description, created_at, updated_at
	`

	var t models.Task
	err := database.DB.QueryRow(ctx, query, req.Name, req.Description, id).Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Delete removes a task by ID. Its items are removed by the schema's
// ON DELETE CASCADE, so a later item listing for the task comes back empty.
//
// Returns:
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}
