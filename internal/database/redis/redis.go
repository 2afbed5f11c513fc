package redis

import (
	"context"
	"log"
	"time"

	"gallery-service/internal/config"

	redis_v9 "github.com/redis/go-redis/v9"
)

var Redis_Client *redis_v9.Client

func InitRedisClient(cfg *config.RedisConfig) error {
	Redis_Client = redis_v9.NewClient(&redis_v9.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis_Client.Ping(ctx).Err(); err != nil {
		log.Printf("Error pinging Redis: %v", err)
		return err
	}

	log.Printf("Successfully connected to Redis at %s", cfg.Address)
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() {
	if Redis_Client != nil {
		if err := Redis_Client.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}
