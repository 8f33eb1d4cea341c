package middleware

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggerIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger
	Logger = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { Logger = orig })

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(StructuredLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	line := buf.String()
	assert.Contains(t, line, `"request_id"`)
	assert.Contains(t, line, `"path":"/ping"`)
	assert.Contains(t, line, `"status":200`)
}
