// Package repository implements the database access layer for ProjectBoard.
// This file handles item CRUD and the pending to completed transition.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/models"
	"github.com/jackc/pgx/v5"
)

// ItemRepository handles item-related database operations.
// Completion is one-directional: there is no operation reverting an item to
// pending, and completed_at is only ever written together with the status.
type ItemRepository struct{}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

// itemColumns is the scan order shared by every query returning a full item
// row.
const itemColumns = `id, task_id, title, description, priority, status, due_date, assigned_to, created_at, updated_at, completed_at`

func scanItem(row pgx.Row, i *models.Item) error {
	return row.Scan(
		&i.ID, &i.TaskID, &i.Title, &i.Description, &i.Priority, &i.Status,
		&i.DueDate, &i.AssignedTo, &i.CreatedAt, &i.UpdatedAt, &i.CompletedAt,
	)
}

// ListByTask retrieves all items under a task with assignee identities,
// ordered by creation time descending.
//
// Database: LEFT JOIN with users; unassigned items return NULL name/email.
func (r *ItemRepository) ListByTask(ctx context.Context, taskID int) ([]models.ItemWithAssignee, error) {
	query := `
		SELECT i.id, i.task_id, i.title, i.description, i.priority, i.status,
		       i.due_date, i.assigned_to, i.created_at, i.updated_at, i.completed_at,
		       u.name AS assigned_to_name, u.email AS assigned_to_email
		FROM items i
		LEFT JOIN users u ON i.assigned_to = u.id
		WHERE i.task_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ItemWithAssignee
	for rows.Next() {
		var it models.ItemWithAssignee
		err := rows.Scan(
			&it.ID, &it.TaskID, &it.Title, &it.Description, &it.Priority, &it.Status,
			&it.DueDate, &it.AssignedTo, &it.CreatedAt, &it.UpdatedAt, &it.CompletedAt,
			&it.AssignedToName, &it.AssignedToEmail,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// FindByID retrieves a single item with its assignee identity.
//
// Returns:
//   - *models.ItemWithAssignee: Item row, assignee fields nil when unassigned
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ItemRepository) FindByID(ctx context.Context, id int) (*models.ItemWithAssignee, error) {
	query := `
		SELECT i.id, i.task_id, i.title, i.description, i.priority, i.status,
		       i.due_date, i.assigned_to, i.created_at, i.updated_at, i.completed_at,
		       u.name AS assigned_to_name, u.email AS assigned_to_email
		FROM items i
		LEFT JOIN users u ON i.assigned_to = u.id
		WHERE i.id = $1
	`

	var it models.ItemWithAssignee
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.TaskID, &it.Title, &it.Description, &it.Priority, &it.Status,
		&it.DueDate, &it.AssignedTo, &it.CreatedAt, &it.UpdatedAt, &it.CompletedAt,
		&it.AssignedToName, &it.AssignedToEmail,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// Create inserts a new item in pending status.
//
// Side Effects: Populates item.ID, Status, CreatedAt and UpdatedAt with
// database values. The caller is responsible for defaulting Priority.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (task_id, title, description, priority, due_date, assigned_to, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at
	`

	return database.DB.QueryRow(ctx, query,
		item.TaskID, item.Title, item.Description, item.Priority,
		item.DueDate, item.AssignedTo, models.ItemStatusPending,
	).Scan(&item.ID, &item.Status, &item.CreatedAt, &item.UpdatedAt)
}

// Update applies a partial update to an item's editable fields.
// Nil fields leave the column unchanged via COALESCE.
//
// Returns:
//   - *models.Item: The updated row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ItemRepository) Update(ctx context.Context, id int, req models.UpdateItemRequest) (*models.Item, error) {
	query := `
		UPDATE items SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			priority = COALESCE($4, priority),
			due_date = COALESCE($5, due_date),
			assigned_to = COALESCE($6, assigned_to),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + itemColumns

	var it models.Item
	err := scanItem(database.DB.QueryRow(ctx, query,
		req.Title, req.Description, req.Status, req.Priority,
		req.DueDate, req.AssignedTo, id,
	), &it)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// Complete transitions an item to completed and stamps completed_at. The
// update is unconditional: completing an already-completed item re-stamps
// completed_at. Stats are unaffected by a repeat since counts group by
// status, not by transitions.
//
// Returns:
//   - *models.Item: The completed row
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ItemRepository) Complete(ctx context.Context, id int) (*models.Item, error) {
	query := `
		UPDATE items SET
			status = $1,
			completed_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING ` + itemColumns

	var it models.Item
	err := scanItem(database.DB.QueryRow(ctx, query, models.ItemStatusCompleted, id), &it)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// Delete removes an item by ID.
//
// Returns:
//   - error: ErrNotFound if the id doesn't exist, database error otherwise
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}
