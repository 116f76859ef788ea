package redisstore

import (
	"context"
	"log"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/config"
	"github.com/redis/go-redis/v9"
)

func MustInitRedis(cfg *config.WithdrawalConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to init redis: %v\n", err)
	}

	return rdb
}
