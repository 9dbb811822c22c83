package database

import (
	"context"
	"bwh/core-api/internal/infrastructure/config"
	"bwh/core-api/internal/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	log    logger.Logger
}

// NewRedisCache connects using the capture module's ReplayConfig, the
// only domain config that currently names a Redis backend (spec.md
// §4.3/§9: the replay store's redis option).
func NewRedisCache(cfg *config.ReplayConfig, log logger.Logger) CacheDatabase {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithFields(map[string]any{
			"error": err.Error(),
		}).Warn("Failed to connect to Redis")
	}

	return &redisCache{
		client: client,
		log:    log,
	}
}

func (r *redisCache) GetClient() *redis.Client {
	return r.client
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
