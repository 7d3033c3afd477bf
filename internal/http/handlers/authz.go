package handlers

import (
	"strings"

	"tradepost/internal/domain"
	applog "tradepost/internal/log"
	"tradepost/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth resolves the bearer token to a principal and injects it
// into the request context. Mutating market routes sit behind this.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token", "code": "UNAUTHENTICATED",
			})
		}
		p, err := auth.Authenticate(token)
		if err != nil {
			applog.Security(c, "auth.token.reject", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token", "code": "UNAUTHENTICATED",
			})
		}
		c.Locals("principal", p)
		c.Locals("principal_id", p.ID)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// caller returns the authenticated principal set by RequireAuth.
func caller(c *fiber.Ctx) *domain.Principal {
	p, _ := c.Locals("principal").(*domain.Principal)
	return p
}
