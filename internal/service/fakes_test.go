package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/academy-service/internal/domain"
)

// fakeEducatorRepo is an in-memory EducatorRepository. It enforces the same
// uniqueness constraints as the real schema and reports them as pgconn
// unique violations so the translation path is exercised. createErr lets
// tests inject a store failure on the create step.
type fakeEducatorRepo struct {
	mu        sync.Mutex
	educators []*domain.Educator
	seq       int
	createErr error
}

func newFakeEducatorRepo() *fakeEducatorRepo {
	return &fakeEducatorRepo{}
}

func (f *fakeEducatorRepo) Create(_ context.Context, educator *domain.Educator) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.educators {
		if existing.Email == educator.Email {
			return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintEducatorEmail}
		}
		if existing.Domain == educator.Domain {
			return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintEducatorDomain}
		}
	}

	f.seq++
	educator.ID = fmt.Sprintf("educator-%d", f.seq)
	educator.CreatedAt = time.Now()
	educator.UpdatedAt = educator.CreatedAt
	stored := *educator
	f.educators = append(f.educators, &stored)
	return nil
}

func (f *fakeEducatorRepo) GetByID(_ context.Context, id string) (*domain.Educator, error) {
	return f.find(func(e *domain.Educator) bool { return e.ID == id })
}

func (f *fakeEducatorRepo) GetByEmail(_ context.Context, email string) (*domain.Educator, error) {
	return f.find(func(e *domain.Educator) bool { return e.Email == email })
}

func (f *fakeEducatorRepo) GetByDomain(_ context.Context, domainSlug string) (*domain.Educator, error) {
	return f.find(func(e *domain.Educator) bool { return e.Domain == domainSlug })
}

func (f *fakeEducatorRepo) find(match func(*domain.Educator) bool) (*domain.Educator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, educator := range f.educators {
		if match(educator) {
			copied := *educator
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEducatorRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.educators)
}

// fakeStudentRepo is an in-memory StudentRepository. lookupCalls counts
// GetByEmailAndEducator invocations so tests can assert that a failed tenant
// resolution short-circuits before any credential logic runs.
type fakeStudentRepo struct {
	mu          sync.Mutex
	students    []*domain.Student
	seq         int
	createErr   error
	lookupCalls int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.students {
		if existing.Email == student.Email && existing.EducatorID == student.EducatorID {
			return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintStudentEmail}
		}
	}

	f.seq++
	student.ID = fmt.Sprintf("student-%d", f.seq)
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	stored := *student
	f.students = append(f.students, &stored)
	return nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.ID == id {
			copied := *student
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentRepo) ListByEducator(_ context.Context, educatorID string) ([]*domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var students []*domain.Student
	for _, student := range f.students {
		if student.EducatorID == educatorID {
			copied := *student
			students = append(students, &copied)
		}
	}
	return students, nil
}

func (f *fakeStudentRepo) GetByEmailAndEducator(_ context.Context, email, educatorID string) (*domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupCalls++
	for _, student := range f.students {
		if student.Email == email && student.EducatorID == educatorID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.students)
}

func (f *fakeStudentRepo) lookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookupCalls
}
