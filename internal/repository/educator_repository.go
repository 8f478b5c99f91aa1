package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/academy-service/internal/domain"
)

// EducatorRepository defines persistence access for tenant-owning educators.
type EducatorRepository interface {
	Create(ctx context.Context, educator *domain.Educator) error
	GetByID(ctx context.Context, id string) (*domain.Educator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Educator, error)
	GetByDomain(ctx context.Context, domainSlug string) (*domain.Educator, error)
}

type educatorRepository struct {
	pool *pgxpool.Pool
}

// NewEducatorRepository returns a Postgres-backed implementation.
func NewEducatorRepository(pool *pgxpool.Pool) EducatorRepository {
	return &educatorRepository{pool: pool}
}

func (r *educatorRepository) Create(ctx context.Context, educator *domain.Educator) error {
	const query = `
        INSERT INTO educator_accounts (email, password_hash, name, domain, domain_verified)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		educator.Email,
		educator.PasswordHash,
		educator.Name,
		educator.Domain,
		educator.DomainVerified,
	).Scan(&educator.ID, &educator.CreatedAt, &educator.UpdatedAt)
}

func (r *educatorRepository) GetByID(ctx context.Context, id string) (*domain.Educator, error) {
	const query = `
        SELECT id, email, password_hash, name, domain, domain_verified, created_at, updated_at
        FROM educator_accounts WHERE id=$1`

	return r.scanOne(ctx, query, id)
}

func (r *educatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Educator, error) {
	const query = `
        SELECT id, email, password_hash, name, domain, domain_verified, created_at, updated_at
        FROM educator_accounts WHERE email=$1`

	return r.scanOne(ctx, query, email)
}

func (r *educatorRepository) GetByDomain(ctx context.Context, domainSlug string) (*domain.Educator, error) {
	const query = `
        SELECT id, email, password_hash, name, domain, domain_verified, created_at, updated_at
        FROM educator_accounts WHERE domain=$1`

	return r.scanOne(ctx, query, domainSlug)
}

func (r *educatorRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Educator, error) {
	var educator domain.Educator
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&educator.ID,
		&educator.Email,
		&educator.PasswordHash,
		&educator.Name,
		&educator.Domain,
		&educator.DomainVerified,
		&educator.CreatedAt,
		&educator.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &educator, nil
}
