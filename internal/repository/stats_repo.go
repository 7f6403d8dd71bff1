// Package repository implements the database access layer for ProjectBoard.
// This file provides the progress rollup queries: derived total/completed
// item counts at task and project level, recomputed from live item rows on
// every read and never persisted. Because nothing is cached, the counts can
// never drift out of sync with the underlying rows.
package repository

import (
	"context"
	"math"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
)

// StatsRepository handles the aggregate queries behind progress displays.
// It has no failure mode of its own beyond propagating storage errors; a
// nonexistent task or project id simply aggregates to zero counts, and
// existence checks are the caller's concern.
type StatsRepository struct{}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// TaskStats holds the derived item counts for a single task.
// CompletedItems never exceeds TotalItems by construction: completed rows are a
// subset of the rows being counted.
type TaskStats struct {
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
}

// ProjectStats holds the derived counts across every task of a project.
type ProjectStats struct {
	TotalTasks     int `json:"total_tasks"`
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
}

// Percentage converts completed/total counts into an integer 0..100.
// Returns 0 when total is 0 - this is the one edge case every caller would
// otherwise have to guard, and it must never divide by zero.
// Rounding is half away from zero, matching what the UI displays.
func Percentage(total, completed int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// GetTaskStats retrieves the item counts for a single task.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - taskID: Task to aggregate items for
//
// Returns:
//   - *TaskStats: Item counts, both 0 for a task with no items
//   - error: Database error if the query fails, nil on success
//
// Database: COUNT with a CASE filter; an aggregate over zero rows still
// produces one result row, so a zero-item task never errors.
func (r *StatsRepository) GetTaskStats(ctx context.Context, taskID int) (*TaskStats, error) {
	query := `
		SELECT COUNT(i.id) AS total_items,
		       COUNT(CASE WHEN i.status = 'completed' THEN 1 END) AS completed_items
		FROM items i
		WHERE i.task_id = $1
	`

	stats := &TaskStats{}
	err := database.DB.QueryRow(ctx, query, taskID).
		Scan(&stats.TotalItems, &stats.CompletedItems)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetProjectStats retrieves the rollup counts across all tasks of a project.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - projectID: Project to aggregate over
//
// Returns:
//   - *ProjectStats: Distinct task count plus item counts over the union of
//     items under all of the project's tasks
//   - error: Database error if the query fails, nil on success
//
// Database: LEFT JOIN from tasks to items so a task with zero items counts
// toward total_tasks while contributing nothing to either item count. The
// DISTINCT qualifiers guard against join fan-out double-counting.
func (r *StatsRepository) GetProjectStats(ctx context.Context, projectID int) (*ProjectStats, error) {
	query := `
		SELECT COUNT(DISTINCT t.id) AS total_tasks,
		       COUNT(DISTINCT i.id) AS total_items,
		       COUNT(DISTINCT CASE WHEN i.status = 'completed' THEN i.id END) AS completed_items
		FROM tasks t
		LEFT JOIN items i ON t.id = i.task_id
		WHERE t.project_id = $1
	`

	stats := &ProjectStats{}
	err := database.DB.QueryRow(ctx, query, projectID).
		Scan(&stats.TotalTasks, &stats.TotalItems, &stats.CompletedItems)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ListProjectsWithStats retrieves every project visible to a user - owned or
// shared through membership - enriched with owner identity and rollup
// counts, ordered by creation time descending.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - userID: User whose dashboard is being rendered
//
// Returns:
//   - []models.ProjectWithStats: One row per visible project
//   - error: Database error if the query fails, nil on success
//
// Database: The visibility predicate (owner_id = $1 OR id IN members) keeps
// each project to a single row even when the user is both owner and member;
// the stats come from a grouped subquery joined per project, COALESCEd to 0
// for projects with no tasks yet.
func (r *StatsRepository) ListProjectsWithStats(ctx context.Context, userID int) ([]models.ProjectWithStats, error) {
	query := `
		SELECT p.id, p.name, p.description, p.owner_id, p.status,
		       p.created_at, p.updated_at, p.closed_at,
		       u.name AS owner_name, u.email AS owner_email,
		       COALESCE(task_stats.total_tasks, 0) AS total_tasks,
		       COALESCE(task_stats.total_items, 0) AS total_items,
		       COALESCE(task_stats.completed_items, 0) AS completed_items
		FROM projects p
		JOIN users u ON p.owner_id = u.id
		LEFT JOIN (
			SELECT t.project_id,
			       COUNT(DISTINCT t.id) AS total_tasks,
			       COUNT(DISTINCT i.id) AS total_items,
			       COUNT(DISTINCT CASE WHEN i.status = 'completed' THEN i.id END) AS completed_items
			FROM tasks t
			LEFT JOIN items i ON t.id = i.task_id
			GROUP BY t.project_id
		) task_stats ON p.id = task_stats.project_id
		WHERE p.owner_id = $1 OR p.id IN (
			SELECT project_id FROM project_members WHERE user_id = $1
		)
		ORDER BY p.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.ProjectWithStats
	for rows.Next() {
		var p models.ProjectWithStats
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &p.ClosedAt,
			&p.OwnerName, &p.OwnerEmail,
			&p.TotalTasks, &p.TotalItems, &p.CompletedItems,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// ListTasksWithStats retrieves every task under a project enriched with its
// own item counts, ordered by creation time descending.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - projectID: Project whose tasks are listed
//
// Returns:
//   - []models.TaskWithStats: One row per task; zero-item tasks report 0/0
//   - error: Database error if the query fails, nil on success
func (r *StatsRepository) ListTasksWithStats(ctx context.Context, projectID int) ([]models.TaskWithStats, error) {
	query := `
		SELECT t.id, t.project_id, t.name, t.description, t.created_at, t.updated_at,
		       COUNT(i.id) AS total_items,
		       COUNT(CASE WHEN i.status = 'completed' THEN 1 END) AS completed_items
		FROM tasks t
		LEFT JOIN items i ON t.id = i.task_id
		WHERE t.project_id = $1
		GROUP BY t.id
		ORDER BY t.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.TaskWithStats
	for rows.Next() {
		var t models.TaskWithStats
		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
			&t.TotalItems, &t.CompletedItems,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}
