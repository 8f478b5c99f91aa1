package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academy-service/internal/auth"
	"github.com/spec-kit/academy-service/internal/repository"
	"github.com/spec-kit/academy-service/internal/service"
)

// AcademiesHandler exposes tenant lookups for the signin/signup forms and a
// guarded per-tenant surface.
type AcademiesHandler struct {
	tenants  *service.TenantResolver
	students repository.StudentRepository
}

// NewAcademiesHandler constructs handler.
func NewAcademiesHandler(tenants *service.TenantResolver, students repository.StudentRepository) *AcademiesHandler {
	return &AcademiesHandler{tenants: tenants, students: students}
}

// Show handles GET /academies/:domain. Public: the student forms use it to
// resolve the academy before submitting credentials. Never returns account
// details beyond the display surface.
func (h *AcademiesHandler) Show(c *fiber.Ctx) error {
	educator, err := h.tenants.Resolve(c.Context(), c.Params("domain"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"domain":          educator.Domain,
			"name":            educator.Name,
			"domain_verified": educator.DomainVerified,
		},
	})
}

// Portal handles GET /academies/:domain/portal behind the tenant guard. It
// echoes the claims pages key their rendering off.
func (h *AcademiesHandler) Portal(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"tenant": session.TenantSlug(),
			"role":   session.Role,
			"id":     session.SubjectID,
		},
	})
}

// Roster handles GET /academies/:domain/roster, educator-only. The educator
// id comes from the session claims, not from the route.
func (h *AcademiesHandler) Roster(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	students, err := h.students.ListByEducator(c.Context(), session.SubjectID)
	if err != nil {
		return err
	}

	entries := make([]fiber.Map, 0, len(students))
	for _, student := range students {
		entries = append(entries, fiber.Map{
			"id":    student.ID,
			"email": student.Email,
			"name":  student.Name,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"students": entries}})
}

// Enrollment handles GET /academies/:domain/enrollment, student-only.
func (h *AcademiesHandler) Enrollment(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"educator_id": session.EducatorID,
			"tenant":      session.Tenant,
		},
	})
}
