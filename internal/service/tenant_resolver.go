package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/academy-service/internal/domain"
	"github.com/spec-kit/academy-service/internal/repository"
	apperrors "github.com/spec-kit/academy-service/pkg/util"
)

const tenantCachePrefix = "tenant:"

// TenantResolver maps a domain slug to its owning educator. Slugs are
// matched exactly as stored; no trimming or case folding happens here.
// Resolved tenants are served from a short-lived Redis cache when one is
// configured, so the lookup on every student signin does not always hit
// Postgres.
type TenantResolver struct {
	educators repository.EducatorRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewTenantResolver builds a resolver; cache may be nil.
func NewTenantResolver(educators repository.EducatorRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *TenantResolver {
	return &TenantResolver{educators: educators, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// cachedTenant holds the resolver-relevant subset of an educator row.
// Credentials are never written to the cache.
type cachedTenant struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	DomainVerified bool   `json:"domain_verified"`
}

// Resolve returns the educator owning the slug, or an invalid-tenant error.
// Flows that depend on a tenant must call this before any credential logic.
func (r *TenantResolver) Resolve(ctx context.Context, domainSlug string) (*domain.Educator, error) {
	if domainSlug == "" {
		return nil, errInvalidTenant()
	}

	if educator := r.fromCache(ctx, domainSlug); educator != nil {
		return educator, nil
	}

	educator, err := r.educators.GetByDomain(ctx, domainSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errInvalidTenant()
		}
		return nil, apperrors.NewInternalError(err)
	}

	r.toCache(ctx, educator)
	return educator, nil
}

func (r *TenantResolver) fromCache(ctx context.Context, domainSlug string) *domain.Educator {
	if r.cache == nil {
		return nil
	}
	raw, err := r.cache.Get(ctx, tenantCachePrefix+domainSlug).Bytes()
	if err != nil {
		return nil
	}
	var cached cachedTenant
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil
	}
	return &domain.Educator{
		ID:             cached.ID,
		Email:          cached.Email,
		Name:           cached.Name,
		Domain:         cached.Domain,
		DomainVerified: cached.DomainVerified,
	}
}

func (r *TenantResolver) toCache(ctx context.Context, educator *domain.Educator) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(cachedTenant{
		ID:             educator.ID,
		Email:          educator.Email,
		Name:           educator.Name,
		Domain:         educator.Domain,
		DomainVerified: educator.DomainVerified,
	})
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, tenantCachePrefix+educator.Domain, raw, r.cacheTTL).Err(); err != nil {
		r.logger.Debug("tenant cache write failed", zap.Error(err))
	}
}
