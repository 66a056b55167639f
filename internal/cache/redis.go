package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
)

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

func NewRedisClientFromConfig(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	return NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
}
