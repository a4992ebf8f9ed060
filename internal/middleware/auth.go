package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"airvoice/internal/db"
	"airvoice/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// deny rejects a request: API routes get a JSON 401, browser routes get
// redirected to the login flow.
func deny(c fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "unauthorized",
		})
	}
	sess := session.FromContext(c)
	if sess != nil {
		sess.Set("redirect_after_login", c.OriginalURL())
	}
	return c.Redirect().To("/auth/login")
}

// RequireAuth ensures the user is authenticated.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return deny(c)
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return deny(c)
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return deny(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireSupervisor ensures the user is a supervisor or admin. Must run
// after RequireAuth.
func (m *AuthMiddleware) RequireSupervisor(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || !user.IsSupervisor() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "supervisor role required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures the user is an admin. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "admin role required",
		})
	}
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return c.Next()
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err == nil {
		c.Locals("user", user)
	}

	return c.Next()
}
