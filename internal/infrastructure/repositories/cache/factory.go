package cache

import (
	"context"
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/config"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// CacheType represents the type of cache implementation
type CacheType string

const (
	CacheTypeFile   CacheType = "file"
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

const (
	redisPingTimeout = 2 * time.Second
	redisRetryDelay  = 200 * time.Millisecond
	redisMaxDelay    = 2 * time.Second
)

// Factory provides methods to create cache instances
type Factory struct {
	fs             afero.Fs
	newRedisClient func(opts *redis.Options) redisClient
}

// NewFactory creates a new cache factory backed by the OS filesystem
func NewFactory() *Factory {
	return &Factory{
		fs: afero.NewOsFs(),
		newRedisClient: func(opts *redis.Options) redisClient {
			return redis.NewClient(opts)
		},
	}
}

// WithFs reemplaza el filesystem del backend file (tests usan afero.NewMemMapFs)
func (f *Factory) WithFs(fsys afero.Fs) *Factory {
	f.fs = fsys
	return f
}

// CreateCache creates a cache instance based on configuration
func (f *Factory) CreateCache(ctx context.Context, cfg config.CacheConfig) (interfaces.Cache, error) {
	switch CacheType(cfg.Backend) {
	case CacheTypeFile:
		logging.Info(ctx, "Creating file cache", logging.Fields{
			"type": "file",
			"dir":  cfg.File.Dir,
		})
		return NewFileCache(f.fs, cfg.File.Dir)

	case CacheTypeMemory:
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type": "memory",
		})
		return NewMemoryCache(), nil

	case CacheTypeRedis:
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"addr":     cfg.Redis.Addr,
			"database": cfg.Redis.DB,
		})
		return f.createRedisCache(ctx, cfg.Redis)

	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Backend)
	}
}

// createRedisCache creates the client and checks the connection with bounded retries
func (f *Factory) createRedisCache(ctx context.Context, cfg config.RedisConfig) (interfaces.Cache, error) {
	rdb := f.newRedisClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
			defer cancel()
			return rdb.Ping(pingCtx).Err()
		},
		retry.Attempts(uint(attempts)),
		retry.Delay(redisRetryDelay),
		retry.MaxDelay(redisMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordCacheConnectRetry(string(CacheTypeRedis), int(n+1))
			logging.Warn(ctx, "Redis connection attempt failed", logging.Fields{
				"addr":         cfg.Addr,
				"attempt":      n + 1,
				"max_attempts": attempts,
				"error":        err.Error(),
			})
		}),
	)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     cfg.Addr,
		"database": cfg.DB,
	})
	return NewRedisCacheWithClient(rdb), nil
}
