package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/domain"
	apperrors "github.com/spec-kit/academy-service/pkg/util"
)

const sessionKey = "auth_session"

// Session is the authenticated caller as reconstructed from token claims.
// It is derived solely from the signed token; nothing here is re-resolved
// against storage on a per-request basis.
type Session struct {
	SubjectID  string
	Role       domain.Role
	Email      string
	Name       string
	Domain     string
	EducatorID string
	Tenant     string
}

// TenantSlug returns the tenant namespace the session belongs to: an
// educator's own domain, or the tenant captured at student authentication.
func (s *Session) TenantSlug() string {
	if s.Role == domain.RoleEducator {
		return s.Domain
	}
	return s.Tenant
}

// SessionMiddleware validates session tokens and loads claims into the
// request context. Tokens are accepted from a bearer header or the session
// cookie; tokens past the sliding threshold are transparently re-issued.
type SessionMiddleware struct {
	tokens     *TokenManager
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName}
}

// Handle enforces authentication for protected routes. Invalid or expired
// tokens always yield 401; there is no guest downgrade.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := m.extractToken(c)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("missing session token")
	}

	claims, err := m.tokens.Parse(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired session")
	}

	if m.tokens.ShouldRefresh(claims) {
		if refreshed, expiresAt, err := m.tokens.Refresh(claims); err == nil {
			m.setCookie(c, refreshed, expiresAt)
		}
	}

	session := &Session{
		SubjectID:  claims.SubjectID,
		Role:       claims.Role,
		Email:      claims.Email,
		Name:       claims.Name,
		Domain:     claims.Domain,
		EducatorID: claims.EducatorID,
		Tenant:     claims.Tenant,
	}
	c.Locals(sessionKey, session)
	return c.Next()
}

// SetSessionCookie writes the session token cookie after signin/signup.
func (m *SessionMiddleware) SetSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	m.setCookie(c, token, expiresAt)
}

// ClearSessionCookie discards the session client-side. Stateless tokens have
// no server-side revocation; the cookie removal is the whole sign-out.
func (m *SessionMiddleware) ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *SessionMiddleware) extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(m.cookieName)
}

func (m *SessionMiddleware) setCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}
