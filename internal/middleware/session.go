// Package middleware provides session, authorization, and logging middleware.
package middleware

import (
	"inkwell/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the single cookie carrying the signed credential.
const SessionCookie = "inkwell_session"

const identityKey = "identity"

// Session decodes the credential cookie on every request. A valid token
// attaches the identity to the request; any failure leaves the request
// anonymous. This middleware never rejects a request — public routes must
// still be reachable.
func Session(tokens *auth.TokenCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cookie := c.Cookies(SessionCookie); cookie != "" {
			if identity, err := tokens.Verify(cookie); err == nil {
				c.Locals(identityKey, identity)
			}
		}
		return c.Next()
	}
}

// CurrentIdentity returns the authenticated identity for the request, with
// ok=false when the request is anonymous.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

// RequireAuth redirects anonymous requests to the landing page. It is a
// routing decision, not an error.
func RequireAuth(c *fiber.Ctx) error {
	if _, ok := CurrentIdentity(c); !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}
