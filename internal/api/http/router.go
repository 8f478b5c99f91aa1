package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/api/http/handlers"
	"github.com/spec-kit/academy-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Session           *handlers.SessionHandler
	Academies         *handlers.AcademiesHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/credentials", cfg.Auth.Credentials)

	session := app.Group("/session", cfg.SessionMiddleware.Handle, auth.RequireAnyRole())
	session.Get("", cfg.Session.Me)
	session.Post("/signout", cfg.Session.SignOut)

	// The bare academy lookup stays public for the signin forms; only the
	// tenant-scoped pages sit behind the session and tenant guards.
	academies := app.Group("/academies")
	academies.Get("/:domain", cfg.Academies.Show)
	academies.Get("/:domain/portal",
		cfg.SessionMiddleware.Handle, auth.RequireTenant("domain"), cfg.Academies.Portal)
	academies.Get("/:domain/roster",
		cfg.SessionMiddleware.Handle, auth.RequireTenant("domain"), auth.RequireEducator(), cfg.Academies.Roster)
	academies.Get("/:domain/enrollment",
		cfg.SessionMiddleware.Handle, auth.RequireTenant("domain"), auth.RequireStudent(), cfg.Academies.Enrollment)
}
