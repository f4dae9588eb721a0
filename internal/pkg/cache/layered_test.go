package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayeredBackfillsL1FromL2(t *testing.T) {
	l1 := New(time.Minute)
	l2 := New(time.Minute)
	c := NewLayered(l1, l2)
	ctx := context.Background()

	// 只写 L2，模拟本实例冷启动
	require.NoError(t, l2.SetEX(ctx, "k", "v", time.Minute))

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// 回填后 L1 直接命中
	direct, err := l1.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", direct)

	m := c.SnapshotMetrics()
	assert.Equal(t, uint64(1), m.HitsL2)
	assert.Equal(t, uint64(1), m.BackfillL1)
}

func TestLayeredSetWritesBothDelClearsBoth(t *testing.T) {
	l1 := New(time.Minute)
	l2 := New(time.Minute)
	c := NewLayered(l1, l2)
	ctx := context.Background()

	require.NoError(t, c.SetEX(ctx, "k", "v", time.Minute))
	v1, _ := l1.Get(ctx, "k")
	v2, _ := l2.Get(ctx, "k")
	assert.Equal(t, "v", v1)
	assert.Equal(t, "v", v2)

	require.NoError(t, c.Del(ctx, "k"))
	v1, _ = l1.Get(ctx, "k")
	v2, _ = l2.Get(ctx, "k")
	assert.Empty(t, v1)
	assert.Empty(t, v2)
}

func TestNilSentinel(t *testing.T) {
	assert.True(t, IsNilSentinel(WrapNil(true)))
	assert.False(t, IsNilSentinel(""))
	assert.False(t, IsNilSentinel("value"))
}

func TestJitterTTLBounds(t *testing.T) {
	base := 10 * time.Minute
	for i := 0; i < 100; i++ {
		got := JitterTTL(base)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/10)
	}
	assert.Equal(t, time.Duration(0), JitterTTL(0))
}

func TestSimpleCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.SetEX(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSimpleCacheEvictsExpiredEntries(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.SetEX(ctx, "gone", "1", 10*time.Millisecond))
	require.NoError(t, c.SetEX(ctx, "kept", "1", time.Minute))
	time.Sleep(20 * time.Millisecond)

	// 过期读触发删除
	v, err := c.Get(ctx, "gone")
	require.NoError(t, err)
	assert.Empty(t, v)
	c.mu.RLock()
	_, gone := c.data["gone"]
	c.mu.RUnlock()
	assert.False(t, gone)

	// 兜底清扫不影响未过期条目
	c.evictExpired()
	c.mu.RLock()
	_, kept := c.data["kept"]
	c.mu.RUnlock()
	assert.True(t, kept)
}

func TestSimpleCacheSweepEvictsUnreadKeys(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.SetEX(ctx, k, "1", 10*time.Millisecond))
	}
	time.Sleep(20 * time.Millisecond)
	c.evictExpired()
	c.mu.RLock()
	n := len(c.data)
	c.mu.RUnlock()
	assert.Zero(t, n)
}
