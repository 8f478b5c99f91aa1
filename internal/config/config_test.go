package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Name != "academy-service" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Auth.SessionMaxAge() != 30*24*time.Hour {
		t.Errorf("SessionMaxAge() = %v, want 30 days", cfg.Auth.SessionMaxAge())
	}
	if cfg.Auth.SessionRefreshAfter() != 24*time.Hour {
		t.Errorf("SessionRefreshAfter() = %v, want 24h", cfg.Auth.SessionRefreshAfter())
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.SessionCookieName != "academy_session" {
		t.Errorf("SessionCookieName = %q", cfg.Auth.SessionCookieName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_SESSION_MAX_AGE_DAYS", "7")
	t.Setenv("AUTH_SESSION_REFRESH_AFTER_HOURS", "12")
	t.Setenv("AUTH_BCRYPT_COST", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Auth.SessionMaxAge() != 7*24*time.Hour {
		t.Errorf("SessionMaxAge() = %v, want 7 days", cfg.Auth.SessionMaxAge())
	}
	if cfg.Auth.SessionRefreshAfter() != 12*time.Hour {
		t.Errorf("SessionRefreshAfter() = %v, want 12h", cfg.Auth.SessionRefreshAfter())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.Auth.BcryptCost)
	}
}
