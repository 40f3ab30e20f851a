// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskhub_backend/internal/feature/tasks/domain/entity"
	"taskhub_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of the
// per-owner status aggregation. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
// Reads and mutations pass straight through; only CountByStatus is cached,
// and every mutation invalidates the owner's cached entry.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "taskstats".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "taskstats"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// statsKey generates the cache key for an owner's aggregation.
func (c *CachingTaskRepository) statsKey(ownerID uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, ownerID)
}

// invalidate drops the owner's cached aggregation. Best effort: a cache
// failure never fails the mutation that triggered it.
func (c *CachingTaskRepository) invalidate(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.statsKey(ownerID)).Err()
}

// Find passes through to the underlying repository.
func (c *CachingTaskRepository) Find(ctx context.Context, ownerID uint, q usecase.Query) ([]entity.Task, error) {
	return c.inner.Find(ctx, ownerID, q)
}

// FindOne passes through to the underlying repository.
func (c *CachingTaskRepository) FindOne(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	return c.inner.FindOne(ctx, id, ownerID)
}

// Create persists the task and invalidates the owner's cached aggregation.
func (c *CachingTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.OwnerID)
	return nil
}

// UpdateFields updates the task and invalidates the owner's cached aggregation.
func (c *CachingTaskRepository) UpdateFields(ctx context.Context, id, ownerID uint, fields map[string]any) error {
	if err := c.inner.UpdateFields(ctx, id, ownerID, fields); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// Delete deletes the task and invalidates the owner's cached aggregation.
func (c *CachingTaskRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// CountByStatus retrieves the aggregation, checking cache first then falling
// back to the database.
func (c *CachingTaskRepository) CountByStatus(ctx context.Context, ownerID uint) (map[entity.Status]int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.CountByStatus(ctx, ownerID)
	}

	key := c.statsKey(ownerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out map[entity.Status]int64
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}
