package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/aq2208/order-tally/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisGuard marks consumed order ids in Redis so a replayed process request
// is rejected across instances. The TTL bounds how long the terminal state
// is remembered; 0 keeps it forever.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

func (g *RedisGuard) TryConsume(ctx context.Context, orderID uint64) (bool, error) {
	return g.rdb.SetNX(ctx, key(orderID), "1", g.ttl).Result()
}

func (g *RedisGuard) Forget(ctx context.Context, orderID uint64) error {
	return g.rdb.Del(ctx, key(orderID)).Err()
}

func key(orderID uint64) string {
	return "processed:" + strconv.FormatUint(orderID, 10)
}

var _ usecase.ConsumptionGuard = (*RedisGuard)(nil)
