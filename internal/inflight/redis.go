package inflight

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "staffing_inflight_"

// 只有 value 仍是自己写入的 token 时才删除，避免 key 过期后误删其他请求的记录
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard 让多个 API 实例共享同一份进行中操作的记录，
// ttl 用来兜底进程崩溃时没有释放的 key
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{
		rdb:    rdb,
		ttl:    ttl,
		tokens: make(map[string]string),
	}
}

func (g *RedisGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	g.mu.Lock()
	g.tokens[key] = token
	g.mu.Unlock()

	return true, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) {
	g.mu.Lock()
	token, ok := g.tokens[key]
	delete(g.tokens, key)
	g.mu.Unlock()

	if !ok {
		return
	}

	deleted, err := releaseScript.Run(ctx, g.rdb, []string{keyPrefix + key}, token).Int()
	if err != nil {
		// 释放失败时只能等待 key 过期
		slog.Error("无法释放进行中的操作", "key", key, "error", err)
		return
	}
	if deleted == 0 {
		slog.Warn("进行中的操作已过期，未释放", "key", key)
	}
}
