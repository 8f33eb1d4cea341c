package server

import (
	"fmt"
	"log/slog"

	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /. Authenticated users get their dashboard; everyone else
// gets the landing page with the registration form.
func (s *Server) Home(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Render("homepage", fiber.Map{})
	}

	posts, err := s.postRepo.ListByAuthor(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Render("dashboard", fiber.Map{
		"User":  identity,
		"Posts": posts,
	})
}

// CreatePostPage handles GET /create-post.
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(c)
	return c.Render("create-post", fiber.Map{"User": identity})
}

// CreatePost handles POST /create-post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	identity, _ := middleware.CurrentIdentity(c)

	title, body, errs := validation.PostInput(
		c.FormValue("title"),
		c.FormValue("body"),
	)
	if len(errs) > 0 {
		return c.Render("create-post", fiber.Map{
			"User":   identity,
			"Errors": errs,
		})
	}

	post := &models.Post{
		Title:    title,
		Body:     body,
		AuthorID: identity.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return err
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusFound)
}

// loadOwnedPost fetches the post named by the :id param and verifies the
// requester owns it. A missing post, a bad id, and an ownership mismatch all
// redirect to the landing page identically, so the response never reveals
// whether the id exists. Callers must return the accompanying error and stop
// when the post comes back nil.
func (s *Server) loadOwnedPost(c *fiber.Ctx) (*models.Post, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil, c.Redirect("/", fiber.StatusFound)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, c.Redirect("/", fiber.StatusFound)
	}

	post, err := s.postRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != identity.UserID {
		return nil, c.Redirect("/", fiber.StatusFound)
	}

	return post, nil
}

// EditPostPage handles GET /edit-post/:id.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	post, err := s.loadOwnedPost(c)
	if post == nil {
		return err
	}

	identity, _ := middleware.CurrentIdentity(c)
	return c.Render("edit-post", fiber.Map{
		"User": identity,
		"Post": post,
	})
}

// EditPost handles POST /edit-post/:id. Only title and body change; the
// creation timestamp and author are left alone.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.Context()

	post, err := s.loadOwnedPost(c)
	if post == nil {
		return err
	}

	title, body, errs := validation.PostInput(
		c.FormValue("title"),
		c.FormValue("body"),
	)
	if len(errs) > 0 {
		identity, _ := middleware.CurrentIdentity(c)
		return c.Render("edit-post", fiber.Map{
			"User":   identity,
			"Post":   post,
			"Errors": errs,
		})
	}

	if err := s.postRepo.Update(ctx, post.ID, title, body); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusFound)
}

// DeletePost handles POST /delete-post/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()

	post, err := s.loadOwnedPost(c)
	if post == nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)

	return c.Redirect("/", fiber.StatusFound)
}

// ShowPost handles GET /post/:id, the public single-post view. Edit and
// delete controls only render for the owning author; everyone else, signed
// in or not, sees the post body alone.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Redirect("/", fiber.StatusFound)
	}

	var post models.Post
	found, err := cache.GetJSON(ctx, cache.PostKey(uint(id)), &post)
	if err != nil {
		// Cache reads are best effort; serve from the database instead.
		middleware.Logger.Warn("post cache read failed",
			slog.Uint64("post_id", uint64(id)),
			slog.String("error", err.Error()),
		)
		found = false
	}
	if !found {
		fetched, err := s.postRepo.GetByID(ctx, uint(id))
		if err != nil {
			return err
		}
		if fetched == nil {
			return c.Redirect("/", fiber.StatusFound)
		}
		post = *fetched
		_ = cache.SetJSON(ctx, cache.PostKey(post.ID), post, cache.PostTTL)
	}

	identity, ok := middleware.CurrentIdentity(c)
	isAuthor := ok && post.AuthorID == identity.UserID

	data := fiber.Map{
		"Post":     post,
		"BodyHTML": markdown.Render(post.Body),
		"IsAuthor": isAuthor,
	}
	if ok {
		data["User"] = identity
	}
	return c.Render("single-post", data)
}
