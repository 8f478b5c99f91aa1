package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/domain"
)

func newGuardedApp(tm *TokenManager) *fiber.App {
	sessions := NewSessionMiddleware(tm, "academy_session")
	app := fiber.New()
	app.Get("/session", sessions.Handle, RequireAnyRole(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/academies/:domain/portal", sessions.Handle, RequireTenant("domain"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/academies/:domain/roster", sessions.Handle, RequireTenant("domain"), RequireEducator(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

// Requirement: protected routes fail closed on missing, tampered and expired
// tokens, and role/tenant guards compare the signed claims against the page.
func TestSessionMiddlewareAndGuards(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	app := newGuardedApp(tm)

	educatorToken, _, err := tm.Mint(&domain.Principal{
		ID: "educator-1", Email: "a@x.com", Role: domain.RoleEducator, Domain: "alpha",
	})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	studentToken, _, err := tm.Mint(&domain.Principal{
		ID: "student-1", Email: "s@y.com", Role: domain.RoleStudent, EducatorID: "educator-1", Tenant: "alpha",
	})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}

	expiredTM := NewTokenManager("test-secret", time.Nanosecond, 24*time.Hour)
	expiredToken, _, err := expiredTM.Mint(&domain.Principal{
		ID: "student-1", Role: domain.RoleStudent, Tenant: "alpha",
	})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{"no token is unauthorized", "/session", "", http.StatusUnauthorized},
		{"tampered token is unauthorized", "/session", educatorToken + "x", http.StatusUnauthorized},
		{"expired token is unauthorized", "/session", expiredToken, http.StatusUnauthorized},
		{"valid token reaches session", "/session", studentToken, http.StatusOK},
		{"educator portal on own domain", "/academies/alpha/portal", educatorToken, http.StatusOK},
		{"student portal on own tenant", "/academies/alpha/portal", studentToken, http.StatusOK},
		{"wrong tenant is forbidden", "/academies/beta/portal", studentToken, http.StatusForbidden},
		{"roster requires educator role", "/academies/alpha/roster", studentToken, http.StatusForbidden},
		{"roster allows the tenant educator", "/academies/alpha/roster", educatorToken, http.StatusOK},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, test.path, nil)
			if test.token != "" {
				req.Header.Set("Authorization", "Bearer "+test.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != test.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
		})
	}
}

// Requirement: tokens are accepted from the session cookie too, and a token
// past the sliding threshold is re-issued on the response.
func TestSessionCookieRefresh(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 20*time.Millisecond)
	app := newGuardedApp(tm)

	token, _, err := tm.Mint(&domain.Principal{
		ID: "student-1", Role: domain.RoleStudent, EducatorID: "educator-1", Tenant: "alpha",
	})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: "academy_session", Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var refreshed string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "academy_session" {
			refreshed = cookie.Value
		}
	}
	if refreshed == "" {
		t.Fatal("a token past the threshold should be re-issued as a cookie")
	}
	claims, err := tm.Parse(refreshed)
	if err != nil {
		t.Fatalf("Parse() of refreshed cookie error: %v", err)
	}
	if claims.SubjectID != "student-1" || claims.Tenant != "alpha" {
		t.Errorf("refreshed claims do not match: %+v", claims)
	}
}
