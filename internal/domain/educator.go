package domain

import "time"

// Educator is the owner of an academy tenant. Its Domain is the tenant
// namespace every student-scoped lookup is keyed through; it is assigned once
// at signup and never changes.
type Educator struct {
	ID             string
	Email          string
	PasswordHash   *string // nil for pre-provisioned accounts that cannot sign in yet
	Name           string
	Domain         string
	DomainVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanSignIn reports whether the account holds a usable credential.
func (e *Educator) CanSignIn() bool {
	return e.PasswordHash != nil && *e.PasswordHash != ""
}
