// Package repository implements the database access layer for ProjectBoard.
// This file handles project membership, which grants non-owners visibility
// of a project in their dashboard list.
package repository

import (
	"context"
	"fmt"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
)

// MemberRepository handles project membership database operations.
type MemberRepository struct{}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// ListMembers retrieves all members of a project with their identities,
// ordered alphabetically by name.
func (r *MemberRepository) ListMembers(ctx context.Context, projectID int) ([]models.MemberWithUser, error) {
	query := `
		SELECT pm.project_id, pm.user_id, pm.created_at, u.name, u.email
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY u.name
	`

	rows, err := database.DB.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.MemberWithUser
	for rows.Next() {
		var m models.MemberWithUser
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.CreatedAt, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// AddMember adds a user to a project.
// Idempotent operation - duplicate memberships are ignored.
//
// Database: Uses ON CONFLICT DO NOTHING on the composite primary key.
func (r *MemberRepository) AddMember(ctx context.Context, projectID, userID int) error {
	query := `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`

	_, err := database.DB.Exec(ctx, query, projectID, userID)
	return err
}

// RemoveMember removes a user from a project.
//
// Returns:
//   - error: ErrNotFound if no such membership exists, database error otherwise
func (r *MemberRepository) RemoveMember(ctx context.Context, projectID, userID int) error {
	query := `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`

	tag, err := database.DB.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("membership (%d, %d): %w", projectID, userID, ErrNotFound)
	}
	return nil
}
