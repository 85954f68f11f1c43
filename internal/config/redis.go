package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

// ConnectRedis wires the optional result cache. Empty addr disables it; the
// cache layer is nil-safe.
func ConnectRedis(addr, password string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, result cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable (%v), result cache disabled", err)
		return nil
	}

	redisClient = client
	log.Println("connected to Redis")
	return client
}

// GetRedis returns the shared client, possibly nil.
func GetRedis() *redis.Client {
	return redisClient
}
