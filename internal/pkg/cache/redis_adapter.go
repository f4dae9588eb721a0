package cache

import (
	"context"
	"time"

	redisrepo "go-blogadmin/internal/repository/redis"
)

// RedisAdapter 将 redis 客户端适配为 Cache 接口（L2）

type RedisAdapter struct{ c *redisrepo.Client }

func NewRedisAdapter(c *redisrepo.Client) *RedisAdapter { return &RedisAdapter{c: c} }

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	return r.c.GetString(ctx, key), nil
}

func (r *RedisAdapter) SetEX(ctx context.Context, key, val string, ttl time.Duration) error {
	return r.c.SetTTL(ctx, key, val, ttl)
}

func (r *RedisAdapter) Del(ctx context.Context, keys ...string) error {
	r.c.Del(ctx, keys...)
	return nil
}

// RemainingTTL 实现 TTLFetcher
// go-redis TTL: -2 key 不存在；-1 无过期
func (r *RedisAdapter) RemainingTTL(ctx context.Context, key string) (time.Duration, bool) {
	res := r.c.Client.TTL(ctx, key)
	if res.Err() != nil || res.Val() <= 0 {
		return 0, false
	}
	return res.Val(), true
}
