package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/academy-service/internal/domain"
)

// TokenManager issues and validates the signed session tokens. Tokens carry
// an absolute expiry and are re-signed once they pass the sliding refresh
// threshold, but a token is never extended past validation failure: an
// expired or tampered token is simply invalid.
type TokenManager struct {
	secret       []byte
	maxAge       time.Duration
	refreshAfter time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, maxAge, refreshAfter time.Duration) *TokenManager {
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	if refreshAfter <= 0 {
		refreshAfter = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), maxAge: maxAge, refreshAfter: refreshAfter}
}

// Claims describes the session token payload. Domain is set for educators;
// EducatorID and Tenant for students.
type Claims struct {
	SubjectID  string      `json:"sub_id"`
	Role       domain.Role `json:"role"`
	Email      string      `json:"email"`
	Name       string      `json:"name,omitempty"`
	Domain     string      `json:"domain,omitempty"`
	EducatorID string      `json:"educator_id,omitempty"`
	Tenant     string      `json:"tenant,omitempty"`
	jwt.RegisteredClaims
}

// Mint builds and signs a session token for the authenticated principal.
func (tm *TokenManager) Mint(principal *domain.Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.maxAge)
	claims := &Claims{
		SubjectID:  principal.ID,
		Role:       principal.Role,
		Email:      principal.Email,
		Name:       principal.Name,
		Domain:     principal.Domain,
		EducatorID: principal.EducatorID,
		Tenant:     principal.Tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates signature and expiry and returns claims. Any failure is
// terminal: callers treat it as an unauthenticated request.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, errors.New("unknown role claim")
	}
	return claims, nil
}

// ShouldRefresh reports whether a valid token is past the sliding re-issue
// threshold and ought to be re-signed on this request.
func (tm *TokenManager) ShouldRefresh(claims *Claims) bool {
	if claims == nil || claims.IssuedAt == nil {
		return false
	}
	return time.Since(claims.IssuedAt.Time) > tm.refreshAfter
}

// Refresh re-signs the same identity claims with fresh timestamps.
func (tm *TokenManager) Refresh(claims *Claims) (string, time.Time, error) {
	principal := &domain.Principal{
		ID:         claims.SubjectID,
		Email:      claims.Email,
		Name:       claims.Name,
		Role:       claims.Role,
		Domain:     claims.Domain,
		EducatorID: claims.EducatorID,
		Tenant:     claims.Tenant,
	}
	return tm.Mint(principal)
}
