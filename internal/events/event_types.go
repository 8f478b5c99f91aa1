package events

import (
	"time"

	"github.com/spec-kit/academy-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEducatorSignedUp EventType = "educator_signed_up"
	EventStudentSignedUp  EventType = "student_signed_up"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Role      domain.Role `json:"role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EducatorSignedUpPayload payload.
type EducatorSignedUpPayload struct {
	Email  string `json:"email"`
	Domain string `json:"domain"`
}

// StudentSignedUpPayload payload.
type StudentSignedUpPayload struct {
	Email      string `json:"email"`
	EducatorID string `json:"educator_id"`
	Tenant     string `json:"tenant"`
}
