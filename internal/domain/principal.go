package domain

// Role discriminates the two principal kinds. It is fixed at creation; there
// is no migration path between roles.
type Role string

const (
	RoleEducator Role = "educator"
	RoleStudent  Role = "student"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return r == RoleEducator || r == RoleStudent
}

// Principal is the normalized result of a successful signup or signin.
// Domain is set for educators; EducatorID and Tenant for students. Tenant is a
// denormalized copy of the owning educator's domain captured at
// authentication time.
type Principal struct {
	ID         string
	Email      string
	Name       string
	Role       Role
	Domain     string
	EducatorID string
	Tenant     string
}
