package server

import (
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /register. On success the user is created, a
// credential cookie is set, and the browser is sent to the dashboard.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	username, errs := validation.RegisterInput(
		c.FormValue("username"),
		c.FormValue("password"),
	)

	if username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			errs = append(errs, "That account already exists")
		}
	}

	if len(errs) > 0 {
		return c.Render("homepage", fiber.Map{"Errors": errs})
	}

	digest, err := auth.HashPassword(c.FormValue("password"))
	if err != nil {
		return err
	}

	user := &models.User{
		Username: username,
		Password: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// Login handles POST /login. Blank fields, an unknown username, and a wrong
// password all produce the same single error so the response never reveals
// which check failed.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	invalid := func() error {
		return c.Render("login", fiber.Map{"Errors": []string{"invalid credentials"}})
	}

	if username == "" || password == "" {
		return invalid()
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return invalid()
	}

	if !auth.CheckPassword(password, user.Password) {
		return invalid()
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout. The cookie is cleared whether or not it held a
// valid credential.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}
