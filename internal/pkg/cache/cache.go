package cache

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Cache 统一缓存接口：value 一律为 string，JSON 编解码在业务侧处理
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const nilSentinel = "\x00nil\x00"

// WrapNil 空结果哨兵值，防止缓存穿透
func WrapNil(empty bool) string {
	if empty {
		return nilSentinel
	}
	return ""
}

func IsNilSentinel(v string) bool { return v == nilSentinel }

// JitterTTL 在基础 TTL 上叠加至多 10% 抖动，避免集中过期
func JitterTTL(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	return base + time.Duration(rand.Int63n(int64(base)/10+1))
}

type item struct {
	val string
	exp time.Time
}

const janitorInterval = time.Minute

// SimpleCache 线程安全、带 TTL 的进程级缓存（L1），
// 过期条目在读取时删除，后台 janitor 定期兜底清扫
type SimpleCache struct {
	mu   sync.RWMutex
	data map[string]item
	ttl  time.Duration
	stop chan struct{}
}

func New(defaultTTL time.Duration) *SimpleCache {
	c := &SimpleCache{data: make(map[string]item), ttl: defaultTTL, stop: make(chan struct{})}
	go c.janitor()
	return c
}

func (c *SimpleCache) janitor() {
	t := time.NewTicker(janitorInterval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.evictExpired()
		}
	}
}

func (c *SimpleCache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	for k, it := range c.data {
		if !it.exp.IsZero() && now.After(it.exp) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

// Close 停掉 janitor，进程级缓存通常无需调用
func (c *SimpleCache) Close() { close(c.stop) }

func (c *SimpleCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if !it.exp.IsZero() && time.Now().After(it.exp) {
		c.mu.Lock()
		// 持锁后重查，避免删掉并发写入的新值
		if cur, ok := c.data[key]; ok && !cur.exp.IsZero() && time.Now().After(cur.exp) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return "", nil
	}
	return it.val, nil
}

func (c *SimpleCache) SetEX(_ context.Context, key, val string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = item{val: val, exp: exp}
	c.mu.Unlock()
	return nil
}

func (c *SimpleCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *SimpleCache) Flush() {
	c.mu.Lock()
	c.data = make(map[string]item)
	c.mu.Unlock()
}

// RemainingTTL 供 LayeredCache 回填时透传剩余 TTL
func (c *SimpleCache) RemainingTTL(_ context.Context, key string) (time.Duration, bool) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || it.exp.IsZero() || time.Now().After(it.exp) {
		return 0, false
	}
	return time.Until(it.exp), true
}
