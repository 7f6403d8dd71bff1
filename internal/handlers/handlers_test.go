// Package handlers_test provides unit tests for the REST handlers.
// Tests run the real route table over a pgxmock pool, so request routing,
// validation, repository SQL and response shapes are exercised together
// without a database or SMTP server.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/projectboard/internal/config"
	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/handlers"
	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/services"
)

// newTestApp builds a fiber app with the full route table over a mock
// database pool. The notifier runs in mock mode so notification paths are
// exercised without SMTP. The returned cleanup restores the global pool.
func newTestApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface, func()) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "Failed to create mock pool")

	original := database.DB
	database.DB = mock

	logger := logging.NewLogger()
	logger.SetOutput(io.Discard)

	notifier := services.NewNotificationService(
		&config.Config{EmailMode: config.EmailModeMock}, logger)

	app := fiber.New()
	handlers.RegisterRoutes(app, notifier, logger)

	cleanup := func() {
		database.DB = original
		mock.Close()
	}
	return app, mock, cleanup
}

// jsonRequest builds an http request with a JSON body.
func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a JSON response body into out.
func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func strPtr(s string) *string { return &s }
