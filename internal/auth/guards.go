package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/domain"
)

// RequireEducator ensures the session belongs to an educator.
func RequireEducator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok || session.Role != domain.RoleEducator {
			return fiber.NewError(http.StatusForbidden, "educator role required")
		}
		return c.Next()
	}
}

// RequireStudent ensures the session belongs to a student.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok || session.Role != domain.RoleStudent {
			return fiber.NewError(http.StatusForbidden, "student role required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated, either role.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireTenant ensures the session's tenant claim matches the tenant named
// by the route parameter. Educators match on their own domain, students on
// the tenant captured at authentication.
func RequireTenant(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		slug := c.Params(param)
		if slug == "" || session.TenantSlug() != slug {
			return fiber.NewError(http.StatusForbidden, "wrong academy")
		}
		return c.Next()
	}
}
