// Package models defines the domain entities and data transfer objects for
// ProjectBoard. It includes database models mapped to PostgreSQL tables,
// request DTOs for JSON input, and view models for API responses.
package models

import "time"

// Project status values. A project is created active and closing it is a
// terminal transition; there is no reopen operation.
const (
	ProjectStatusActive = "active"
	ProjectStatusClosed = "closed"
)

// Item status values. Completion is one-directional; items are never
// reverted to pending.
const (
	ItemStatusPending   = "pending"
	ItemStatusCompleted = "completed"
)

// Item priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// User represents a system user account.
// Users own projects, appear as project members, and can be assigned items.
//
// Database Table: users
type User struct {
	ID        int       `db:"id" json:"id"`                 // Primary key, auto-increment
	Name      string    `db:"name" json:"name"`             // Display name
	Email     string    `db:"email" json:"email"`           // Unique, notification target
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Account creation timestamp
}

// Project represents a top-level unit of work owned by a single user.
// Deleting a project removes its tasks (and their items) via schema-level
// ON DELETE CASCADE.
//
// Database Table: projects
// Related: Task (one-to-many), ProjectMember (one-to-many)
type Project struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	OwnerID     int        `db:"owner_id" json:"owner_id"`   // Foreign key to users.id
	Status      string     `db:"status" json:"status"`       // "active" or "closed"
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	ClosedAt    *time.Time `db:"closed_at" json:"closed_at"` // Set only on close, nil while active
}

// ProjectMember represents shared visibility of a project for a user other
// than the owner. A project is visible to a user when they own it or a
// member row exists for the (project, user) pair.
//
// Database Table: project_members (composite primary key)
type ProjectMember struct {
	ProjectID int       `db:"project_id" json:"project_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Task represents a grouping of items within a project.
//
// Database Table: tasks
// Related: Project (many-to-one), Item (one-to-many)
type Task struct {
	ID          int       `db:"id" json:"id"`
	ProjectID   int       `db:"project_id" json:"project_id"` // Foreign key to projects.id
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Item is the leaf unit of work. Its completion state drives the derived
// progress rollup at task and project level.
//
// Database Table: items
// Related: Task (many-to-one), User via assigned_to (optional)
type Item struct {
	ID          int        `db:"id" json:"id"`
	TaskID      int        `db:"task_id" json:"task_id"` // Foreign key to tasks.id
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Priority    string     `db:"priority" json:"priority"`         // low, medium, high
	Status      string     `db:"status" json:"status"`             // pending or completed
	DueDate     *time.Time `db:"due_date" json:"due_date"`         // Optional deadline
	AssignedTo  *int       `db:"assigned_to" json:"assigned_to"`   // Optional user reference
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"` // Set only on completion
}

// ============================================================================
// View Models - API Responses
// ============================================================================

// Progress holds the derived rollup statistics for a project. The counts are
// recomputed from live item rows on every read and never stored.
type Progress struct {
	TotalTasks     int `json:"total_tasks"`
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
	Percentage     int `json:"percentage"` // 0 when TotalItems is 0
}

// ProjectWithStats is a project list row enriched with the owner's identity
// and aggregate item counts across all of its tasks.
//
// Used by the project dashboard list (GET /projects/user/:userId).
type ProjectWithStats struct {
	Project
	OwnerName      string `db:"owner_name" json:"owner_name"`
	OwnerEmail     string `db:"owner_email" json:"owner_email"`
	TotalTasks     int    `db:"total_tasks" json:"total_tasks"`
	TotalItems     int    `db:"total_items" json:"total_items"`
	CompletedItems int    `db:"completed_items" json:"completed_items"`
}

// ProjectDetail is a single project enriched with owner identity and a
// progress block including the derived percentage.
//
// Used by the project detail view (GET /projects/:id).
type ProjectDetail struct {
	Project
	OwnerName  string   `db:"owner_name" json:"owner_name"`
	OwnerEmail string   `db:"owner_email" json:"owner_email"`
	Progress   Progress `json:"progress"`
}

// TaskWithStats is a task row enriched with its own item counts.
//
// Used by the task list (GET /tasks/project/:projectId) and task detail.
type TaskWithStats struct {
	Task
	TotalItems     int `db:"total_items" json:"total_items"`
	CompletedItems int `db:"completed_items" json:"completed_items"`
}

// ItemWithAssignee is an item row enriched with the assignee's identity when
// assigned_to is set.
type ItemWithAssignee struct {
	Item
	AssignedToName  *string `db:"assigned_to_name" json:"assigned_to_name"`
	AssignedToEmail *string `db:"assigned_to_email" json:"assigned_to_email"`
}

// MemberWithUser is a project member row joined with the member's identity.
type MemberWithUser struct {
	ProjectMember
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// ============================================================================
// Data Transfer Objects (DTOs) - Request Bodies
// ============================================================================
//
// Optional fields are pointers: absent JSON fields stay nil and map to SQL
// NULL, which COALESCE-style partial updates leave unchanged.

// CreateUserRequest is the body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest is the body for PUT /users/:id.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// CreateProjectRequest is the body for POST /projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int    `json:"owner_id"`
	NotifyEmail string `json:"notify_email"` // Empty suppresses notification
}

// UpdateProjectRequest is the body for PUT /projects/:id.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// CloseProjectRequest is the body for POST /projects/:id/close.
type CloseProjectRequest struct {
	NotifyEmail string `json:"notify_email"`
}

// AddMemberRequest is the body for POST /projects/:id/members.
type AddMemberRequest struct {
	UserID int `json:"user_id"`
}

// CreateTaskRequest is the body for POST /tasks.
type CreateTaskRequest struct {
	ProjectID   int    `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NotifyEmail string `json:"notify_email"`
}

// UpdateTaskRequest is the body for PUT /tasks/:id.
type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateItemRequest is the body for POST /items.
type CreateItemRequest struct {
	TaskID      int        `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"` // Defaults to medium when empty
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *int       `json:"assigned_to"`
	NotifyEmail string     `json:"notify_email"`
}

// UpdateItemRequest is the body for PUT /items/:id.
type UpdateItemRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *int       `json:"assigned_to"`
}

// CompleteItemRequest is the body for POST /items/:id/complete.
type CompleteItemRequest struct {
	NotifyEmail string `json:"notify_email"`
}
