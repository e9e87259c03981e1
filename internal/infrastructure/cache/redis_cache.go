package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisCatalogCache implementación de CatalogCache sobre Redis.
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache conecta el cliente Redis.
func NewRedisCatalogCache(addr, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCatalogCache{client: client}
}

// Ping verifica la conexión (arranque).
func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

// Get devuelve la página cacheada, si existe.
func (c *RedisCatalogCache) Get(ctx context.Context, key string) (*ListingPage, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var page ListingPage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

// Set guarda la página con el TTL dado.
func (c *RedisCatalogCache) Set(ctx context.Context, key string, page *ListingPage, ttl time.Duration) error {
	if page == nil {
		return nil
	}
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
