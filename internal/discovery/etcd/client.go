package etcd

import (
	"context"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

type Config struct {
	Endpoints []string
	TTL       int
}

type Client struct{ *clientv3.Client }

func New(cfg Config) (*Client, error) {
	cli, err := clientv3.New(clientv3.Config{Endpoints: cfg.Endpoints, DialTimeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return &Client{cli}, nil
}

// Register 带租约注册并保活，返回 leaseID 供下线时撤销
func (c *Client) Register(ctx context.Context, key, val string, ttl int64) (clientv3.LeaseID, error) {
	lease, err := c.Client.Grant(ctx, ttl)
	if err != nil {
		return 0, err
	}
	if _, err = c.Client.Put(ctx, key, val, clientv3.WithLease(lease.ID)); err != nil {
		return 0, err
	}
	ch, err := c.Client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return 0, err
	}
	go func() {
		for range ch { // 消耗 keepalive 响应维持租约
		}
	}()
	return lease.ID, nil
}

func (c *Client) Deregister(ctx context.Context, key string, leaseID clientv3.LeaseID) error {
	_, _ = c.Client.Delete(ctx, key)
	if leaseID > 0 {
		_, _ = c.Client.Revoke(ctx, leaseID)
	}
	return nil
}

// Ping 探测任一 endpoint 的状态
func (c *Client) Ping(ctx context.Context) error {
	eps := c.Client.Endpoints()
	if len(eps) == 0 {
		return nil
	}
	_, err := c.Client.Status(ctx, eps[0])
	return err
}

func (c *Client) Close() error { return c.Client.Close() }
