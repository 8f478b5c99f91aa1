package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/api/dto"
	"github.com/spec-kit/academy-service/internal/auth"
	"github.com/spec-kit/academy-service/internal/domain"
	"github.com/spec-kit/academy-service/internal/observability"
	"github.com/spec-kit/academy-service/internal/service"
)

// AuthHandler exposes the credential endpoint for both roles.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionMiddleware
	metrics  *observability.Metrics
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionMiddleware, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, metrics: metrics}
}

// Credentials handles POST /auth/credentials. The request carries explicit
// role and action discriminators; dispatch happens only after they validate.
func (h *AuthHandler) Credentials(c *fiber.Ctx) error {
	var req dto.CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if msg := req.Validate(); msg != "" {
		return fiber.NewError(http.StatusBadRequest, msg)
	}

	var (
		principal *domain.Principal
		token     string
		expiresAt time.Time
		err       error
	)
	switch {
	case req.Role == domain.RoleEducator && req.Action == dto.ActionSignUp:
		principal, token, expiresAt, err = h.auth.SignUpEducator(c.Context(), req.Email, req.Password, req.Domain, req.Name)
	case req.Role == domain.RoleEducator && req.Action == dto.ActionSignIn:
		principal, token, expiresAt, err = h.auth.SignInEducator(c.Context(), req.Email, req.Password)
	case req.Role == domain.RoleStudent && req.Action == dto.ActionSignUp:
		principal, token, expiresAt, err = h.auth.SignUpStudent(c.Context(), req.Email, req.Password, req.Name, req.Tenant)
	default:
		principal, token, expiresAt, err = h.auth.SignInStudent(c.Context(), req.Email, req.Password, req.Tenant)
	}

	h.metrics.RecordAuthAttempt(string(req.Role), string(req.Action), err == nil)
	if err != nil {
		return err
	}

	h.sessions.SetSessionCookie(c, token, expiresAt)

	status := http.StatusOK
	if req.Action == dto.ActionSignUp {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewPrincipalResponse(principal),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
