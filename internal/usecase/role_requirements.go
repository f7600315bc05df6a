package usecase

import (
	"context"
	"time"

	"career-compass/internal/domain/role"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JSONCache is the subset of the Redis cache used by usecases.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// requirementStore reads role requirement lists through the cache. Cache
// failures fall through to the database.
type requirementStore struct {
	roles   repository.RoleRepository
	cache   JSONCache
	metrics *metrics.Metrics
	log     *zap.Logger
}

func (s requirementStore) load(ctx context.Context, roleID uuid.UUID) ([]role.Requirement, error) {
	key := cache.RoleRequirementsKey(roleID)

	if s.cache != nil {
		var cached []role.Requirement
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Warn("requirement cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.ObserveCacheLookup(found)
		if found {
			return cached, nil
		}
	}

	reqs, err := s.roles.ListRequirements(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, reqs, 0); err != nil {
			s.log.Warn("requirement cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return reqs, nil
}

func (s requirementStore) invalidate(ctx context.Context, roleIDs ...uuid.UUID) {
	if s.cache == nil || len(roleIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		keys = append(keys, cache.RoleRequirementsKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn("requirement cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// invalidateAll drops every cached requirement list. Requirements embed
// their skills' prerequisites, so any prerequisite change makes all of them
// stale.
func (s requirementStore) invalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	pattern := cache.AllRoleRequirementsPattern()
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		s.log.Warn("requirement cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
