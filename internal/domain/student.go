package domain

import "time"

// Student belongs to exactly one educator. Email is unique only within that
// educator's academy; the same address may enroll under two different tenants.
type Student struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	EducatorID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
