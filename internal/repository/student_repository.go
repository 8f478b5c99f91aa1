package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/academy-service/internal/domain"
)

// StudentRepository defines persistence access for students. Lookups are
// always scoped to an educator; a global by-email query would cross tenant
// boundaries and is deliberately not offered.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByEmailAndEducator(ctx context.Context, email, educatorID string) (*domain.Student, error)
	ListByEducator(ctx context.Context, educatorID string) ([]*domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (email, password_hash, name, educator_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.Email,
		student.PasswordHash,
		student.Name,
		student.EducatorID,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
        SELECT id, email, password_hash, name, educator_id, created_at, updated_at
        FROM students WHERE id=$1`

	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Email,
		&student.PasswordHash,
		&student.Name,
		&student.EducatorID,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ListByEducator(ctx context.Context, educatorID string) ([]*domain.Student, error) {
	const query = `
        SELECT id, email, password_hash, name, educator_id, created_at, updated_at
        FROM students WHERE educator_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, educatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.PasswordHash,
			&student.Name,
			&student.EducatorID,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}
	return students, rows.Err()
}

func (r *studentRepository) GetByEmailAndEducator(ctx context.Context, email, educatorID string) (*domain.Student, error) {
	const query = `
        SELECT id, email, password_hash, name, educator_id, created_at, updated_at
        FROM students WHERE email=$1 AND educator_id=$2`

	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, email, educatorID).Scan(
		&student.ID,
		&student.Email,
		&student.PasswordHash,
		&student.Name,
		&student.EducatorID,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
