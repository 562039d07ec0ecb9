package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const deliveryKeyPrefix = "wayforpay:delivered:"

// DeliveryStore guards against sending the same order twice when the
// provider repeats a webhook.
type DeliveryStore interface {
	// Claim returns false if the order was already claimed.
	Claim(ctx context.Context, orderReference string) (bool, error)
	Release(ctx context.Context, orderReference string) error
}

type redisCmdable interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisDeliveryStore struct {
	client redisCmdable
	ttl    time.Duration
}

func NewRedisDeliveryStore(client redisCmdable, ttl time.Duration) *RedisDeliveryStore {
	return &RedisDeliveryStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisDeliveryStore) Claim(ctx context.Context, orderReference string) (bool, error) {
	ok, err := s.client.SetNX(ctx, deliveryKey(orderReference), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim delivery %s: %w", orderReference, err)
	}
	return ok, nil
}

func (s *RedisDeliveryStore) Release(ctx context.Context, orderReference string) error {
	if err := s.client.Del(ctx, deliveryKey(orderReference)).Err(); err != nil {
		return fmt.Errorf("release delivery %s: %w", orderReference, err)
	}
	return nil
}

func deliveryKey(orderReference string) string {
	return deliveryKeyPrefix + orderReference
}

// NoopDeliveryStore claims every order; used when no redis is configured.
type NoopDeliveryStore struct{}

func (NoopDeliveryStore) Claim(context.Context, string) (bool, error) {
	return true, nil
}

func (NoopDeliveryStore) Release(context.Context, string) error {
	return nil
}
