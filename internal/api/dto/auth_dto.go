package dto

import (
	"time"

	"github.com/spec-kit/academy-service/internal/domain"
)

// Action discriminates the two credential flows.
type Action string

const (
	ActionSignIn Action = "signin"
	ActionSignUp Action = "signup"
)

// CredentialRequest is the single credential submission shape. Role and
// Action are explicit discriminators validated before dispatch; which of the
// optional fields are required follows from them, never the other way
// around.
type CredentialRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Action   Action      `json:"action"`
	// role=educator, action=signup only:
	Domain string `json:"domain,omitempty"`
	// role=student, any action:
	Tenant string `json:"tenant,omitempty"`
	// signup only:
	Name string `json:"name,omitempty"`
}

// Validate checks the discriminators and the fields they require.
func (r CredentialRequest) Validate() string {
	if r.Email == "" || r.Password == "" {
		return "email and password required"
	}
	if !r.Role.Valid() {
		return "role must be educator or student"
	}
	if r.Action != ActionSignIn && r.Action != ActionSignUp {
		return "action must be signin or signup"
	}
	if r.Role == domain.RoleEducator && r.Action == ActionSignUp && r.Domain == "" {
		return "domain required for educator signup"
	}
	if r.Role == domain.RoleStudent && r.Tenant == "" {
		return "tenant required for student flows"
	}
	return ""
}

// PrincipalResponse is the caller-facing principal shape.
type PrincipalResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name,omitempty"`
	Role       domain.Role `json:"role"`
	Domain     string      `json:"domain,omitempty"`
	EducatorID string      `json:"educator_id,omitempty"`
	Tenant     string      `json:"tenant,omitempty"`
}

// NewPrincipalResponse maps the domain principal.
func NewPrincipalResponse(p *domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       p.Role,
		Domain:     p.Domain,
		EducatorID: p.EducatorID,
		Tenant:     p.Tenant,
	}
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
