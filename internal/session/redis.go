package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
)

const probeKey = "__session_probe__"

// RedisStore keeps session state in Redis. Keys are scoped per visitor so
// two shoppers never share a cart.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis. A failed ping is logged but not fatal:
// the store stays constructed and reports unavailable, and all writes
// no-op, matching how the storefront behaves without localStorage.
func NewRedisStore(addr, password, prefix string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.L().Warn("session store unreachable, persistence disabled",
			zap.String("addr", addr),
			zap.Error(err),
		)
	}

	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key, value string) {
	if err := s.rdb.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("session store write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *RedisStore) Remove(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		logger.FromCtx(ctx).Warn("session store delete failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// IsAvailable probes with a scoped write/remove rather than a ping so the
// answer reflects actual write permission.
func (s *RedisStore) IsAvailable(ctx context.Context) bool {
	k := s.key(probeKey)
	if err := s.rdb.Set(ctx, k, "1", time.Minute).Err(); err != nil {
		return false
	}
	if err := s.rdb.Del(ctx, k).Err(); err != nil {
		return false
	}
	return true
}

// WithPrefix returns a store view scoped under an additional namespace,
// typically the visitor's session id.
func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	combined := prefix
	if s.prefix != "" {
		combined = s.prefix + ":" + prefix
	}
	return &RedisStore{rdb: s.rdb, prefix: combined, ttl: s.ttl}
}
