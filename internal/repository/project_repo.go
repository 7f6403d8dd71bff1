// Package repository implements the database access layer for ProjectBoard.
// This file handles project CRUD and the active to closed lifecycle transition.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/jackc/pgx/v5"
)

// ProjectRepository handles project-related database operations.
// Progress rollups are deliberately not here; they live in StatsRepository
// so the derived counts are always recomputed from live item rows.
type ProjectRepository struct{}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// projectColumns is the scan order shared by every query returning a full
// project row.
const projectColumns = `id, name, description, owner_id, status, created_at, updated_at, closed_at`

func scanProject(row pgx.Row, p *models.Project) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.ClosedAt,
	)
}

// FindByID retrieves a single project with its owner's identity.
// The progress block is filled in by the caller from StatsRepository.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - id: Project's unique identifier
//
// Returns:
//   - *models.ProjectDetail: Project with owner name/email, Progress zeroed
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*models.ProjectDetail, error) {
	query := `
		SELECT p.id, p.name, p.description, p.owner_id, p.status,
		       p.created_at, p.updated_at, p.closed_at,
		       u.name AS owner_name, u.email AS owner_email
		FROM projects p
		JOIN users u ON p.owner_id = u.id
		WHERE p.id = $1
	`

	var d models.ProjectDetail
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.OwnerID, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.ClosedAt,
		&d.OwnerName, &d.OwnerEmail,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// Create inserts a new project in active status.
//
// Side Effects: Populates project.ID, Status, CreatedAt and UpdatedAt with
// database values.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, description, owner_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	return database.DB.QueryRow(ctx, query,
		project.Name, project.Description, project.OwnerID, models.ProjectStatusActive,
	).Scan(&project.ID, &project.Status, &project.CreatedAt, &project.UpdatedAt)
}

// Update applies a partial update to name, description and status.
// Nil fields leave the column unchanged via COALESCE; updated_at is always
// re-stamped.
//
// Returns:
//   - *models.Project: The updated row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ProjectRepository) Update(ctx context.Context, id int, req models.UpdateProjectRequest) (*models.Project, error) {
	query := `
		UPDATE projects SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + projectColumns

	var p models.Project
	err := scanProject(database.DB.QueryRow(ctx, query, req.Name, req.Description, req.Status, id), &p)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Close transitions a project to closed and stamps closed_at. The update is
// unconditional: closing an already-closed project re-stamps closed_at
// rather than failing, so the operation is idempotent in effect.
//
// Returns:
//   - *models.Project: The closed row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ProjectRepository) Close(ctx context.Context, id int) (*models.Project, error) {
	query := `
		UPDATE projects SET
			status = $1,
			closed_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING ` + projectColumns

	var p models.Project
	err := scanProject(database.DB.QueryRow(ctx, query, models.ProjectStatusClosed, id), &p)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Delete removes a project by ID. Tasks, their items and member rows are
// removed by the schema's ON DELETE CASCADE.
//
// Returns:
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return nil
}
