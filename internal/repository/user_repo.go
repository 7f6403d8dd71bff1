// Package repository implements the database access layer for ProjectBoard.
// This file handles user account CRUD operations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/jackc/pgx/v5"
)

// UserRepository handles user-related database operations.
// Users are never soft-deleted; removal is a hard DELETE and the schema
// cascades ownership (owned projects) while nulling item assignments.
type UserRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// List retrieves all users ordered by creation time, newest first.
// Used by the user-switcher in the SPA header.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - []models.User: Slice of all users
//   - error: Database error if query fails, nil on success
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, email, created_at FROM users ORDER BY created_at DESC`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// FindByID retrieves a user by their unique ID.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - id: User's unique identifier (primary key)
//
// Returns:
//   - *models.User: User object
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	var user models.User
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create inserts a new user.
//
// Side Effects: Populates user.ID and user.CreatedAt with database values.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return database.DB.QueryRow(ctx, query, user.Name, user.Email).
		Scan(&user.ID, &user.CreatedAt)
}

// Update applies a partial update to a user's name and email.
// Nil fields map to SQL NULL and leave the column unchanged via COALESCE.
//
// Returns:
//   - *models.User: The updated row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *UserRepository) Update(ctx context.Context, id int, req models.UpdateUserRequest) (*models.User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($1, name),
			email = COALESCE($2, email)
		WHERE id = $3
		RETURNING id, name, email, created_at
	`

	var user models.User
	err := database.DB.QueryRow(ctx, query, req.Name, req.Email, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete removes a user by ID. Owned projects are removed by the schema's
// ON DELETE CASCADE; item assignments are set to NULL.
//
// Returns:
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
