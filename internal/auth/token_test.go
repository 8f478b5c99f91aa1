package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/academy-service/internal/domain"
)

// Requirement: a token minted for a principal decodes to exactly the same
// role-specific claims on every read until expiry.
func TestTokenClaimsRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*24*time.Hour, 24*time.Hour)

	tests := []struct {
		name      string
		principal domain.Principal
	}{
		{
			name: "educator claims carry the tenant domain",
			principal: domain.Principal{
				ID:     "educator-1",
				Email:  "a@x.com",
				Name:   "Alpha Academy",
				Role:   domain.RoleEducator,
				Domain: "alpha",
			},
		},
		{
			name: "student claims carry educator id and tenant",
			principal: domain.Principal{
				ID:         "student-1",
				Email:      "s@y.com",
				Name:       "Stu",
				Role:       domain.RoleStudent,
				EducatorID: "educator-1",
				Tenant:     "alpha",
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			token, expiresAt, err := tm.Mint(&test.principal)
			if err != nil {
				t.Fatalf("Mint() error: %v", err)
			}
			if !expiresAt.After(time.Now().Add(29 * 24 * time.Hour)) {
				t.Errorf("expiry should be about 30 days out, got %v", expiresAt)
			}

			claims, err := tm.Parse(token)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if claims.SubjectID != test.principal.ID ||
				claims.Role != test.principal.Role ||
				claims.Email != test.principal.Email ||
				claims.Domain != test.principal.Domain ||
				claims.EducatorID != test.principal.EducatorID ||
				claims.Tenant != test.principal.Tenant {
				t.Errorf("claims do not match principal: %+v", claims)
			}
		})
	}
}

// Requirement: expired tokens fail closed and are never read as a guest or
// stale session.
func TestTokenExpiryFailsClosed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Nanosecond, 24*time.Hour)

	token, _, err := tm.Mint(&domain.Principal{ID: "student-1", Role: domain.RoleStudent, Tenant: "alpha"})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.Parse(token); err == nil {
		t.Fatal("Parse() should reject an expired token")
	}
}

// Requirement: a token signed with another secret is rejected; claims cannot
// be altered client-side.
func TestTokenSignatureIntegrity(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)

	token, _, err := other.Mint(&domain.Principal{ID: "educator-1", Role: domain.RoleEducator, Domain: "alpha"})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}

	if _, err := tm.Parse(token); err == nil {
		t.Fatal("Parse() should reject a token signed with a different secret")
	}
	if _, err := tm.Parse(token + "tampered"); err == nil {
		t.Fatal("Parse() should reject a tampered token")
	}
}

// Requirement: tokens are re-signed only past the sliding threshold, and the
// refreshed token carries identical identity claims.
func TestTokenSlidingRefresh(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 20*time.Millisecond)

	principal := domain.Principal{
		ID:         "student-1",
		Email:      "s@y.com",
		Role:       domain.RoleStudent,
		EducatorID: "educator-1",
		Tenant:     "alpha",
	}
	token, _, err := tm.Mint(&principal)
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if tm.ShouldRefresh(claims) {
		t.Fatal("fresh token should not need refresh")
	}

	time.Sleep(30 * time.Millisecond)
	if !tm.ShouldRefresh(claims) {
		t.Fatal("token past the threshold should need refresh")
	}

	refreshed, _, err := tm.Refresh(claims)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	refreshedClaims, err := tm.Parse(refreshed)
	if err != nil {
		t.Fatalf("Parse() of refreshed token error: %v", err)
	}
	if refreshedClaims.SubjectID != principal.ID ||
		refreshedClaims.Role != principal.Role ||
		refreshedClaims.EducatorID != principal.EducatorID ||
		refreshedClaims.Tenant != principal.Tenant {
		t.Errorf("refreshed claims do not match: %+v", refreshedClaims)
	}
}
