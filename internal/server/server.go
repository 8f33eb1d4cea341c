// Package server contains the HTTP handlers and routing for the publishing
// app.
package server

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

//go:embed views
var viewsFS embed.FS

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	tokens   *auth.TokenCodec
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	app      *fiber.App
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.Init(cfg.RedisURL)

	return &Server{
		config:   cfg,
		db:       db,
		tokens:   auth.NewTokenCodec(cfg.JWTSecret),
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
	}, nil
}

// viewsEngine builds the template engine over the embedded views.
func viewsEngine() *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(views), ".html")
}

// NewApp builds the Fiber application with views, middleware, and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell",
		Views:   viewsEngine(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).
				SendString("Something went wrong")
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return app
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("inkwell")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Session decoding must run before logging so the log line can carry
	// the username.
	app.Use(middleware.Session(s.tokens))

	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Public routes
	app.Get("/", s.Home)
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.Login)
	app.Post("/register", s.Register)
	app.Get("/logout", s.Logout)
	app.Get("/post/:id", s.ShowPost)

	// Protected routes
	app.Get("/create-post", middleware.RequireAuth, s.CreatePostPage)
	app.Post("/create-post", middleware.RequireAuth, s.CreatePost)
	app.Get("/edit-post/:id", middleware.RequireAuth, s.EditPostPage)
	app.Post("/edit-post/:id", middleware.RequireAuth, s.EditPost)
	app.Post("/delete-post/:id", middleware.RequireAuth, s.DeletePost)

	// Static assets
	app.Static("/", "./public")
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.app = s.NewApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP listener and releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down http listener: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if err := cache.Close(); err != nil {
		log.Printf("error closing redis: %v", err)
	}

	log.Println("Server shutdown complete")
	return nil
}

// setSessionCookie attaches a fresh credential cookie to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
}

// clearSessionCookie expires the credential cookie unconditionally.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
