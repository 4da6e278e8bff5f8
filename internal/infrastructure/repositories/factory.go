package repositories

import (
	"context"

	"vidtok/internal/core/ports"
	"vidtok/internal/infrastructure/repositories/cached"
	"vidtok/internal/infrastructure/repositories/memory"
	redisrepo "vidtok/internal/infrastructure/repositories/redis"
	"vidtok/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RepositoryFactory creates repositories with fallback support. Redis is
// optional; a failed connection degrades to memory repositories.
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	videoCache  *cached.CachedVideoRepository
	logger      *zap.SugaredLogger
}

func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory repositories",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

// CreateVideoRepository creates the feed data source and seeds it with the
// sample feed when empty.
func (f *RepositoryFactory) CreateVideoRepository(ctx context.Context) (ports.VideoRepository, error) {
	var repo ports.VideoRepository
	if f.useRedis && f.redisClient != nil {
		// Redis reads go through a short-lived cache; the memory repo
		// is already in-process and needs none.
		f.videoCache = cached.NewCachedVideoRepository(redisrepo.NewRedisVideoRepository(f.redisClient))
		repo = f.videoCache
	} else {
		repo = memory.NewMemoryVideoRepository()
	}

	videos, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		if err := memory.SeedSampleFeed(ctx, repo); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// CreateUserRepository creates the account store with the demo user seeded
// in the memory case.
func (f *RepositoryFactory) CreateUserRepository() ports.UserRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisUserRepository(f.redisClient)
	}

	repo := memory.NewMemoryUserRepository()
	repo.SeedDemoUser()
	return repo
}

// Close closes the Redis connection if used.
func (f *RepositoryFactory) Close() error {
	if f.videoCache != nil {
		f.videoCache.Stop()
	}
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

// HealthCheck checks Redis connection health.
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
