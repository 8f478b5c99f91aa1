package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/academy-service/internal/auth"
	"github.com/spec-kit/academy-service/internal/config"
	"github.com/spec-kit/academy-service/internal/domain"
	"github.com/spec-kit/academy-service/internal/events"
	"github.com/spec-kit/academy-service/internal/repository"
	apperrors "github.com/spec-kit/academy-service/pkg/util"
)

// Postgres constraint names from migrations/001_init.sql. The store-level
// uniqueness guarantee is the real safety net behind the friendly
// pre-checks: two concurrent signups for the same domain or the same
// (educator, email) pair race past the pre-check and one of them lands here.
const (
	constraintEducatorEmail  = "educator_accounts_email_key"
	constraintEducatorDomain = "educator_accounts_domain_key"
	constraintStudentEmail   = "students_educator_email_key"
)

const uniqueViolationCode = "23505"

// AuthService coordinates the educator and student signup/signin flows.
// Each call is a request-scoped decision procedure: at most one existence
// check followed by at most one create, no retries, no partial commits.
type AuthService struct {
	educators  repository.EducatorRepository
	students   repository.StudentRepository
	tenants    *TenantResolver
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	EducatorRepo   repository.EducatorRepository
	StudentRepo    repository.StudentRepository
	TenantResolver *TenantResolver
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		educators:  deps.EducatorRepo,
		students:   deps.StudentRepo,
		tenants:    deps.TenantResolver,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionMaxAge(), cfg.Auth.SessionRefreshAfter()),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignUpEducator creates a new academy tenant. Both the email and the domain
// must be unused; the domain becomes the tenant identity and never changes.
func (s *AuthService) SignUpEducator(ctx context.Context, email, password, domainSlug, name string) (*domain.Principal, string, time.Time, error) {
	if err := validateEmail(email); err != nil {
		return nil, "", time.Time{}, err
	}
	if password == "" {
		return nil, "", time.Time{}, errMissingField("password")
	}
	if domainSlug == "" {
		return nil, "", time.Time{}, errMissingField("domain")
	}

	if _, err := s.educators.GetByDomain(ctx, domainSlug); err == nil {
		return nil, "", time.Time{}, errDomainTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if _, err := s.educators.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errEmailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if name == "" {
		name = "New Educator"
	}
	educator := &domain.Educator{
		Email:          email,
		PasswordHash:   &hash,
		Name:           name,
		Domain:         domainSlug,
		DomainVerified: false,
	}
	if err := s.educators.Create(ctx, educator); err != nil {
		if conflict := translateUniqueViolation(err); conflict != nil {
			return nil, "", time.Time{}, conflict
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	principal := &domain.Principal{
		ID:     educator.ID,
		Email:  educator.Email,
		Name:   educator.Name,
		Role:   domain.RoleEducator,
		Domain: educator.Domain,
	}
	token, expiresAt, err := s.tokenMgr.Mint(principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEducatorSignedUp,
		SubjectID: educator.ID,
		Role:      domain.RoleEducator,
		Timestamp: time.Now(),
		Payload:   events.EducatorSignedUpPayload{Email: educator.Email, Domain: educator.Domain},
	})
	return principal, token, expiresAt, nil
}

// SignInEducator authenticates an educator by email alone; the tenant on the
// resulting principal comes from storage and cannot be supplied by the
// caller. Unknown email, a password-less seeded account and a wrong password
// all fail identically.
func (s *AuthService) SignInEducator(ctx context.Context, email, password string) (*domain.Principal, string, time.Time, error) {
	if email == "" {
		return nil, "", time.Time{}, errMissingField("email")
	}
	if password == "" {
		return nil, "", time.Time{}, errMissingField("password")
	}

	educator, err := s.educators.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, errInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !educator.CanSignIn() {
		return nil, "", time.Time{}, errInvalidCredentials()
	}
	if err := auth.ComparePassword(*educator.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials()
	}

	principal := &domain.Principal{
		ID:     educator.ID,
		Email:  educator.Email,
		Name:   educator.Name,
		Role:   domain.RoleEducator,
		Domain: educator.Domain,
	}
	token, expiresAt, err := s.tokenMgr.Mint(principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, expiresAt, nil
}

// SignUpStudent enrolls a student under the academy named by tenant. The
// tenant must resolve before anything else happens; email uniqueness is
// scoped to the resolved educator, so the same address may enroll under two
// different academies.
func (s *AuthService) SignUpStudent(ctx context.Context, email, password, name, tenant string) (*domain.Principal, string, time.Time, error) {
	if err := validateEmail(email); err != nil {
		return nil, "", time.Time{}, err
	}
	if password == "" {
		return nil, "", time.Time{}, errMissingField("password")
	}

	educator, err := s.tenants.Resolve(ctx, tenant)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if _, err := s.students.GetByEmailAndEducator(ctx, email, educator.ID); err == nil {
		return nil, "", time.Time{}, errStudentExists()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if name == "" {
		name = "New Student"
	}
	student := &domain.Student{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		EducatorID:   educator.ID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if conflict := translateUniqueViolation(err); conflict != nil {
			return nil, "", time.Time{}, conflict
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	principal := &domain.Principal{
		ID:         student.ID,
		Email:      student.Email,
		Name:       student.Name,
		Role:       domain.RoleStudent,
		EducatorID: educator.ID,
		Tenant:     tenant,
	}
	token, expiresAt, err := s.tokenMgr.Mint(principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStudentSignedUp,
		SubjectID: student.ID,
		Role:      domain.RoleStudent,
		Timestamp: time.Now(),
		Payload:   events.StudentSignedUpPayload{Email: student.Email, EducatorID: educator.ID, Tenant: tenant},
	})
	return principal, token, expiresAt, nil
}

// SignInStudent authenticates a student within one academy. The lookup is
// scoped to (educator, email): the same address under another tenant is a
// different account and must never match here.
func (s *AuthService) SignInStudent(ctx context.Context, email, password, tenant string) (*domain.Principal, string, time.Time, error) {
	if email == "" {
		return nil, "", time.Time{}, errMissingField("email")
	}
	if password == "" {
		return nil, "", time.Time{}, errMissingField("password")
	}

	educator, err := s.tenants.Resolve(ctx, tenant)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	student, err := s.students.GetByEmailAndEducator(ctx, email, educator.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, errInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials()
	}

	principal := &domain.Principal{
		ID:         student.ID,
		Email:      student.Email,
		Name:       student.Name,
		Role:       domain.RoleStudent,
		EducatorID: educator.ID,
		Tenant:     educator.Domain,
	}
	token, expiresAt, err := s.tokenMgr.Mint(principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validateEmail(email string) error {
	if email == "" {
		return errMissingField("email")
	}
	if !strings.Contains(email, "@") {
		return apperrors.NewValidationError("email is malformed", map[string]any{"field": "email"})
	}
	return nil
}

// translateUniqueViolation maps a duplicate-key failure from the store onto
// the same conflict error the pre-check would have produced, nil otherwise.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintEducatorDomain:
		return errDomainTaken()
	case constraintEducatorEmail:
		return errEmailTaken()
	case constraintStudentEmail:
		return errStudentExists()
	default:
		return nil
	}
}
