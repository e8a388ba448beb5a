package repository

import (
	"context"
	"time"

	"github.com/coachdesk/coachdesk/internal/domain"
)

const (
	templateByIDKeyPrefix  = "template:id:"
	templateListKeyPrefix  = "template:list:"
	templateListKeyPattern = "template:list:*"
	templateCacheTTL       = 5 * time.Minute
)

// CachedTemplateRepository wraps MongoTemplateRepository with Redis caching.
// Templates are read on every conflict check and assignment preview, far
// more often than they change.
type CachedTemplateRepository struct {
	backend domain.TemplateRepository
	cache   *RedisCacheRepository
}

func NewCachedTemplateRepository(backend domain.TemplateRepository, cache *RedisCacheRepository) *CachedTemplateRepository {
	return &CachedTemplateRepository{
		backend: backend,
		cache:   cache,
	}
}

func (r *CachedTemplateRepository) GetByID(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	key := templateByIDKeyPrefix + id

	var tmpl domain.ProgramTemplate
	if err := r.cache.Get(ctx, key, &tmpl); err == nil {
		return &tmpl, nil
	}

	result, err := r.backend.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, templateCacheTTL)

	return result, nil
}

func (r *CachedTemplateRepository) Create(ctx context.Context, tmpl *domain.ProgramTemplate) error {
	if err := r.backend.Create(ctx, tmpl); err != nil {
		return err
	}
	_ = r.cache.DeleteByPattern(ctx, templateListKeyPattern)
	return nil
}

// Update persists a template and invalidates its cache entry. Every
// structural edit lands here, so readers never see a stale tree for longer
// than one in-flight request.
func (r *CachedTemplateRepository) Update(ctx context.Context, tmpl *domain.ProgramTemplate) error {
	if err := r.backend.Update(ctx, tmpl); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, templateByIDKeyPrefix+tmpl.ID)
	_ = r.cache.DeleteByPattern(ctx, templateListKeyPattern)
	return nil
}

func (r *CachedTemplateRepository) Delete(ctx context.Context, id string) error {
	if err := r.backend.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, templateByIDKeyPrefix+id)
	_ = r.cache.DeleteByPattern(ctx, templateListKeyPattern)
	return nil
}

// List is cached per trainer. The trainer-scoped keys share a prefix so a
// single pattern delete invalidates every variant after a write.
func (r *CachedTemplateRepository) List(ctx context.Context, trainerID string) ([]*domain.ProgramTemplate, error) {
	key := templateListKeyPrefix + trainerID

	var cached []*domain.ProgramTemplate
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	result, err := r.backend.List(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, result, templateCacheTTL)

	return result, nil
}
