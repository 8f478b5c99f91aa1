package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/auth"
)

// SessionHandler exposes the decoded session claims and sign-out.
type SessionHandler struct {
	sessions *auth.SessionMiddleware
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *auth.SessionMiddleware) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Me handles GET /session. It returns exactly the claims carried by the
// token; nothing is re-resolved against storage.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	claims := fiber.Map{
		"id":    session.SubjectID,
		"email": session.Email,
		"name":  session.Name,
		"role":  session.Role,
	}
	switch {
	case session.Domain != "":
		claims["domain"] = session.Domain
	default:
		claims["educator_id"] = session.EducatorID
		claims["tenant"] = session.Tenant
	}
	return c.JSON(fiber.Map{"data": claims})
}

// SignOut handles POST /session/signout. Discarding the cookie is the whole
// operation; the token itself stays valid until its natural expiry.
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	h.sessions.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"signed_out": true}})
}
