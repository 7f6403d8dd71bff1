// Package repository_test provides unit tests for the repository layer.
// Stats repository tests verify the progress rollup queries and the
// percentage derivation, including the zero-denominator edge case.
package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/avissapr/projectboard/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPercentage verifies the count-to-percentage derivation.
//
// Test Cases:
//   - Zero total never divides by zero and reports 0
//   - Rounding is half away from zero (1/3 gives 33, 2/3 gives 67)
//   - Full completion reports exactly 100
func TestPercentage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		expected  int
	}{
		{"ZeroTotal", 0, 0, 0},
		{"NegativeTotal", -1, 0, 0},
		{"Half", 2, 1, 50},
		{"Third", 3, 1, 33},
		{"TwoThirds", 3, 2, 67},
		{"RoundsHalfUp", 8, 1, 13}, // 12.5 rounds away from zero
		{"AllCompleted", 4, 4, 100},
		{"NoneCompleted", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.Percentage(tt.total, tt.completed)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

// TestStatsRepository_GetTaskStats verifies per-task item counting.
func TestStatsRepository_GetTaskStats(t *testing.T) {
	t.Run("WithItems", func(t *testing.T) {
		mock, restore := newMockDB(t)
		defer restore()

		rows := pgxmock.NewRows([]string{"total_items", "completed_items"}).
			AddRow(2, 1)

		mock.ExpectQuery("SELECT(.+)FROM items i(.+)WHERE i.task_id").
			WithArgs(5).
			WillReturnRows(rows)

		repo := repository.NewStatsRepository()

		stats, err := repo.GetTaskStats(context.Background(), 5)

		assert.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 2, stats.TotalItems)
		assert.Equal(t, 1, stats.CompletedItems)
		assert.LessOrEqual(t, stats.CompletedItems, stats.TotalItems,
			"Completed items are a subset of total items")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZeroItems", func(t *testing.T) {
		mock, restore := newMockDB(t)
		defer restore()

		// An aggregate over zero rows still yields one result row.
		rows := pgxmock.NewRows([]string{"total_items", "completed_items"}).
			AddRow(0, 0)

		mock.ExpectQuery("SELECT(.+)FROM items i(.+)WHERE i.task_id").
			WithArgs(6).
			WillReturnRows(rows)

		repo := repository.NewStatsRepository()

		stats, err := repo.GetTaskStats(context.Background(), 6)

		assert.NoError(t, err, "Zero-item task should not error")
		require.NotNil(t, stats)
		assert.Equal(t, 0, stats.TotalItems)
		assert.Equal(t, 0, repository.Percentage(stats.TotalItems, stats.CompletedItems),
			"Zero-item task must report percentage 0, not a division fault")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestStatsRepository_GetProjectStats verifies the project-level rollup
// across the task and item hierarchy.
//
// Query Details:
//   - LEFT JOIN from tasks so zero-item tasks count toward total_tasks
//   - DISTINCT counts guard against join fan-out
func TestStatsRepository_GetProjectStats(t *testing.T) {
	t.Run("MixedTasks", func(t *testing.T) {
		mock, restore := newMockDB(t)
		defer restore()

		// One task with two items (one completed), one zero-item task.
		rows := pgxmock.NewRows([]string{"total_tasks", "total_items", "completed_items"}).
			AddRow(2, 2, 1)

		mock.ExpectQuery("SELECT(.+)FROM tasks t(.+)LEFT JOIN items i(.+)WHERE t.project_id").
			WithArgs(3).
			WillReturnRows(rows)

		repo := repository.NewStatsRepository()

		stats, err := repo.GetProjectStats(context.Background(), 3)

		assert.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 2, stats.TotalTasks)
		assert.Equal(t, 2, stats.TotalItems)
		assert.Equal(t, 1, stats.CompletedItems)
		assert.LessOrEqual(t, stats.CompletedItems, stats.TotalItems)
		assert.Equal(t, 50, repository.Percentage(stats.TotalItems, stats.CompletedItems))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyProject", func(t *testing.T) {
		mock, restore := newMockDB(t)
		defer restore()

		rows := pgxmock.NewRows([]string{"total_tasks", "total_items", "completed_items"}).
			AddRow(0, 0, 0)

		mock.ExpectQuery("SELECT(.+)FROM tasks t(.+)LEFT JOIN items i(.+)WHERE t.project_id").
			WithArgs(4).
			WillReturnRows(rows)

		repo := repository.NewStatsRepository()

		stats, err := repo.GetProjectStats(context.Background(), 4)

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalTasks)
		assert.Equal(t, 0, repository.Percentage(stats.TotalItems, stats.CompletedItems))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestStatsRepository_ListProjectsWithStats verifies the dashboard list:
// visibility union, stat enrichment and newest-first ordering.
//
// The owner-or-member predicate selects each project row once, so a user
// who both owns a project and appears in its member rows still sees it a
// single time; the query shape (no UNION, no join against members) is what
// guarantees the dedup.
func TestStatsRepository_ListProjectsWithStats(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock, restore := newMockDB(t)
	defer restore()

	cols := []string{
		"id", "name", "description", "owner_id", "status",
		"created_at", "updated_at", "closed_at",
		"owner_name", "owner_email",
		"total_tasks", "total_items", "completed_items",
	}

	// User 7 owns project 3 (and is also a member row) and is a member of
	// project 2 owned by Bob. Each appears exactly once.
	rows := pgxmock.NewRows(cols).
		AddRow(3, "Launch", "Q3 launch", 7, "active", testTime, testTime, nil,
			"Alice", "a@x.com", 1, 2, 1).
		AddRow(2, "Migration", "", 8, "active", testTime.Add(-time.Hour), testTime, nil,
			"Bob", "b@x.com", 0, 0, 0)

	mock.ExpectQuery("SELECT(.+)FROM projects p(.+)LEFT JOIN(.+)WHERE p.owner_id = \\$1 OR p.id IN").
		WithArgs(7).
		WillReturnRows(rows)

	repo := repository.NewStatsRepository()

	projects, err := repo.ListProjectsWithStats(context.Background(), 7)

	assert.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Launch", projects[0].Name, "Newest project should come first")
	assert.Equal(t, 2, projects[0].TotalItems)
	assert.Equal(t, 1, projects[0].CompletedItems)

	assert.Equal(t, "Migration", projects[1].Name)
	assert.Equal(t, 0, projects[1].TotalItems, "Project with no tasks should report zero counts")

	seen := map[int]int{}
	for _, p := range projects {
		seen[p.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "Project %d should appear exactly once", id)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestStatsRepository_ListTasksWithStats verifies the per-project task list
// with counts, including a zero-item task alongside a populated one.
func TestStatsRepository_ListTasksWithStats(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock, restore := newMockDB(t)
	defer restore()

	rows := pgxmock.NewRows(taskStatCols).
		AddRow(6, 3, "Research", "", testTime, testTime, 0, 0).
		AddRow(5, 3, "Design", "UI design", testTime.Add(-time.Hour), testTime, 2, 1)

	mock.ExpectQuery("SELECT(.+)FROM tasks t(.+)LEFT JOIN items i(.+)GROUP BY t.id(.+)ORDER BY t.created_at DESC").
		WithArgs(3).
		WillReturnRows(rows)

	repo := repository.NewStatsRepository()

	tasks, err := repo.ListTasksWithStats(context.Background(), 3)

	assert.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Research", tasks[0].Name)
	assert.Equal(t, 0, tasks[0].TotalItems)
	assert.Equal(t, 0, repository.Percentage(tasks[0].TotalItems, tasks[0].CompletedItems),
		"Zero-item task renders as 0%")

	assert.Equal(t, "Design", tasks[1].Name)
	assert.Equal(t, 50, repository.Percentage(tasks[1].TotalItems, tasks[1].CompletedItems))

	assert.NoError(t, mock.ExpectationsWereMet())
}
