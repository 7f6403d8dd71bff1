// Package handlers_test provides unit tests for the REST handlers.
// User endpoint tests cover validation, CRUD flows and error mapping.
package handlers_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/projectboard/internal/models"
)

// TestUsers_Create verifies user creation.
//
// Test Cases:
//   - Created: valid body returns 201 with the stored row
//   - MissingFields: absent name or email returns 400 before any SQL
//   - InvalidEmail: malformed email returns 400 before any SQL
func TestUsers_Create(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Created", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, testTime)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "a@x.com").
			WillReturnRows(rows)

		resp, err := app.Test(jsonRequest("POST", "/users",
			models.CreateUserRequest{Name: "Alice", Email: "a@x.com"}))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var user models.User
		decodeBody(t, resp, &user)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingFields", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		resp, err := app.Test(jsonRequest("POST", "/users",
			models.CreateUserRequest{Name: "Alice"}))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Email and name are required", body["error"])
		assert.NoError(t, mock.ExpectationsWereMet(), "Validation must reject before any SQL")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		resp, err := app.Test(jsonRequest("POST", "/users",
			models.CreateUserRequest{Name: "Alice", Email: "not-an-email"}))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestUsers_Get verifies the detail lookup and the 404 mapping.
func TestUsers_Get(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		rows := pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(1, "Alice", "a@x.com", testTime)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE id").
			WithArgs(1).
			WillReturnRows(rows)

		resp, err := app.Test(jsonRequest("GET", "/users/1", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var user models.User
		decodeBody(t, resp, &user)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		mock.ExpectQuery("SELECT(.+)FROM users WHERE id").
			WithArgs(99).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}))

		resp, err := app.Test(jsonRequest("GET", "/users/99", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "User not found", body["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidID", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		resp, err := app.Test(jsonRequest("GET", "/users/abc", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestUsers_Update verifies the partial update passes through nil for
// absent fields.
func TestUsers_Update(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	app, mock, cleanup := newTestApp(t)
	defer cleanup()

	rows := pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
		AddRow(1, "Alice B", "a@x.com", testTime)
	mock.ExpectQuery("UPDATE users SET").
		WithArgs(strPtr("Alice B"), (*string)(nil), 1).
		WillReturnRows(rows)

	resp, err := app.Test(jsonRequest("PUT", "/users/1",
		models.UpdateUserRequest{Name: strPtr("Alice B")}))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "Alice B", user.Name)
	assert.Equal(t, "a@x.com", user.Email, "Unset field should keep stored value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUsers_Delete verifies deletion and the 404 mapping.
func TestUsers_Delete(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		mock.ExpectExec("DELETE FROM users WHERE id").
			WithArgs(1).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		resp, err := app.Test(jsonRequest("DELETE", "/users/1", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "User deleted successfully", body["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		app, mock, cleanup := newTestApp(t)
		defer cleanup()

		mock.ExpectExec("DELETE FROM users WHERE id").
			WithArgs(99).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		resp, err := app.Test(jsonRequest("DELETE", "/users/99", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
