package redisrepo

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type Client struct{ *redis.Client }

// New 仅建连；otel tracing hook 由启动层按配置挂载
func New(cfg Config) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &Client{rdb}
}

func (c *Client) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }

func (c *Client) Close() error { return c.Client.Close() }

func (c *Client) SetTTL(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, val, ttl).Err()
}

func (c *Client) GetString(ctx context.Context, key string) string {
	res, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return res
}

func (c *Client) Del(ctx context.Context, keys ...string) {
	_ = c.Client.Del(ctx, keys...).Err()
}

// ===== 访问统计 / 在线状态 =====

const (
	keyOnlineUsers = "chat:online"
	keyViewCount   = "visit:pv:" // + page
	keyUniqueDay   = "visit:uv:" // + yyyymmdd, HyperLogLog
)

// MarkOnline / MarkOffline 维护聊天室在线用户集合
func (c *Client) MarkOnline(ctx context.Context, uid string) error {
	return c.Client.SAdd(ctx, keyOnlineUsers, uid).Err()
}

func (c *Client) MarkOffline(ctx context.Context, uid string) error {
	return c.Client.SRem(ctx, keyOnlineUsers, uid).Err()
}

func (c *Client) OnlineCount(ctx context.Context) int64 {
	n, err := c.Client.SCard(ctx, keyOnlineUsers).Result()
	if err != nil {
		return 0
	}
	return n
}

// RecordVisit 页面 PV 自增 + 当日 UV（按 IP 去重，HyperLogLog）
func (c *Client) RecordVisit(ctx context.Context, page, ip string) {
	_ = c.Client.Incr(ctx, keyViewCount+page).Err()
	day := time.Now().Format("20060102")
	_ = c.Client.PFAdd(ctx, keyUniqueDay+day, ip).Err()
}

func (c *Client) PageViews(ctx context.Context, page string) int64 {
	n, err := c.Client.Get(ctx, keyViewCount+page).Int64()
	if err != nil {
		return 0
	}
	return n
}

func (c *Client) UniqueVisitors(ctx context.Context, day time.Time) int64 {
	n, err := c.Client.PFCount(ctx, keyUniqueDay+day.Format("20060102")).Result()
	if err != nil {
		return 0
	}
	return n
}

// IncrArticleViews 文章阅读数，返回自增后的值
func (c *Client) IncrArticleViews(ctx context.Context, articleID int64) int64 {
	n, err := c.Client.Incr(ctx, "article:views:"+strconv.FormatInt(articleID, 10)).Result()
	if err != nil {
		return 0
	}
	return n
}

func (c *Client) ArticleViews(ctx context.Context, articleID int64) int64 {
	n, err := c.Client.Get(ctx, "article:views:"+strconv.FormatInt(articleID, 10)).Int64()
	if err != nil {
		return 0
	}
	return n
}
