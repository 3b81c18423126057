package containers

import (
	"context"
	"log"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.2-alpine"

type RedisContainer struct {
	container *redis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	container, err := redis.Run(context.Background(), redisImage)
	if err != nil {
		log.Fatalf("error starting redis container: %v", err)
	}
	return &RedisContainer{container: container}
}

func (c *RedisContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating redis container: %v", err)
	}
}

func (c *RedisContainer) URL() string {
	url, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting redis connection string: %v", err)
	}
	return url
}
