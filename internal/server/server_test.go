package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a server over an in-memory SQLite database and a
// Fiber app with the session middleware and routes, but without the
// process-wide metrics middleware.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret-key",
		Port:      "3000",
		Env:       "test",
		DBDriver:  "sqlite",
	}

	s := &Server{
		config:   cfg,
		db:       db,
		tokens:   auth.NewTokenCodec(cfg.JWTSecret),
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
	}

	app := fiber.New(fiber.Config{Views: viewsEngine()})
	app.Use(middleware.Session(s.tokens))
	s.SetupRoutes(app)

	return s, app
}

// formRequest builds an urlencoded POST the way a browser form submits.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// sessionCookieValue plucks the credential cookie out of a response, or ""
// when none was set.
func sessionCookieValue(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

// registerUser drives the real registration route and returns the issued
// cookie value.
func registerUser(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	resp, err := app.Test(formRequest("/register", url.Values{
		"username": {username},
		"password": {password},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	cookie := sessionCookieValue(resp)
	require.NotEmpty(t, cookie)
	return cookie
}

// createPost inserts a post directly through the repository.
func createPost(t *testing.T, s *Server, authorID uint, title, body string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, Body: body, AuthorID: authorID}
	require.NoError(t, s.postRepo.Create(t.Context(), post))
	return post
}

func withSession(req *http.Request, cookie string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	return req
}

func userCount(t *testing.T, s *Server) int64 {
	t.Helper()

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	return count
}
