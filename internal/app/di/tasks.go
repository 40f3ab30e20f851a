// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	taskadapters "taskhub_backend/internal/feature/tasks/adapters"
	"taskhub_backend/internal/feature/tasks/usecase"
	"taskhub_backend/internal/platform/cache"
)

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, the Postgres repository is wrapped with a
// stats-caching decorator. Otherwise the plain repository is returned.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB, statsTTL time.Duration) usecase.TaskRepository {
	repo := taskadapters.NewTaskPostgres(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingTaskRepository(rdb, statsTTL, repo, "taskstats")
}
