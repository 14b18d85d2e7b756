package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/domain"
)

const userLocal = "user"

// IdentityResolver turns a bearer credential into the identity it names.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) *domain.User
}

// RequireAuth rejects requests without a valid bearer credential and
// injects the resolved identity into the request locals.
func RequireAuth(resolver IdentityResolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return unauthorized(c, "missing authorization")
		}

		user := resolver.ResolveIdentity(c.Context(), token)
		if user == nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// OptionalAuth injects the identity when a valid credential is present and
// lets the request through either way.
func OptionalAuth(resolver IdentityResolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := BearerToken(c); token != "" {
			if user := resolver.ResolveIdentity(c.Context(), token); user != nil {
				c.Locals(userLocal, user)
			}
		}
		return c.Next()
	}
}

// BearerToken reads the Authorization header, falling back to ?token=.
func BearerToken(c fiber.Ctx) string {
	if header := c.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Query("token")
}

// GetUser returns the identity injected by RequireAuth or OptionalAuth.
func GetUser(c fiber.Ctx) *domain.User {
	u, ok := c.Locals(userLocal).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
