package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig reprend les variables REDIS_* de la configuration
type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// InitRedis ouvre la connexion et vérifie qu'elle répond
func InitRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("REDIS_HOST non configuré")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Test de connexion
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return client, nil
}

// --- Rate limiting ---

// Counter implémente les compteurs de rate limit sur Redis
type Counter struct {
	client *redis.Client
}

func NewCounter(client *redis.Client) *Counter {
	return &Counter{client: client}
}

// Increment incrémente le compteur et (re)pose sa fenêtre d'expiration
func (c *Counter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *Counter) Count(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// Cooldown renvoie le temps restant si la clé de cooldown existe
func (c *Counter) Cooldown(ctx context.Context, key string) (time.Duration, bool) {
	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ Erreur lecture cooldown %s: %v", key, err)
		return 0, false
	}
	// valeurs négatives : clé absente ou sans expiration
	if ttl <= 0 {
		return 0, false
	}
	return ttl, true
}

func (c *Counter) StartCooldown(ctx context.Context, key string, d time.Duration) error {
	return c.client.Set(ctx, key, "1", d).Err()
}

func (c *Counter) Reset(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
