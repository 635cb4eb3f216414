package utils

import (
	"context"
	"fmt"
	"time"

	"portfolio/config"

	"github.com/go-redis/redis/v8"
)

// CodeCacheClient is the Redis client holding pending verification codes.
var CodeCacheClient *redis.Client

// InitCodeCache connects to the Redis DB reserved for verification codes.
func InitCodeCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCodeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (codes): %w", err)
	}
	CodeCacheClient = client
	return nil
}

// GetCodeCacheClient returns the verification code client, or nil when Redis is not in use.
func GetCodeCacheClient() *redis.Client {
	return CodeCacheClient
}
