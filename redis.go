package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// initRedis connects to redisURL. Both redis:// URLs and bare host:port work.
func initRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if !strings.Contains(redisURL, "://") {
		redisURL = "redis://" + redisURL
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: strings.TrimPrefix(redisURL, "redis://"),
		}
	}

	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}
