package http

import (
	"context"
	"time"

	"go-blogadmin/internal/discovery/etcd"
	"go-blogadmin/internal/metrics"
	rds "go-blogadmin/internal/repository/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthChecker 依赖连通性探测，/healthz 与 readiness 探针共用
type HealthChecker struct {
	DB    *gorm.DB
	Redis *rds.Client
	Etcd  *etcd.Client
}

func NewHealthChecker(db *gorm.DB, r *rds.Client, e *etcd.Client) *HealthChecker {
	return &HealthChecker{DB: db, Redis: r, Etcd: e}
}

type depStatus struct {
	Name string `json:"name"`
	Up   bool   `json:"up"`
}

func (h *HealthChecker) check(ctx context.Context) []depStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := make([]depStatus, 0, 3)
	probe := func(name string, gauge interface{ Set(float64) }, fn func() error) {
		start := time.Now()
		err := fn()
		metrics.DependencyCheckDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		up := err == nil
		if up {
			gauge.Set(1)
		} else {
			gauge.Set(0)
		}
		out = append(out, depStatus{Name: name, Up: up})
	}

	probe("postgres", metrics.DBUp, func() error {
		sqlDB, err := h.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	probe("redis", metrics.RedisUp, func() error { return h.Redis.Ping(ctx) })
	if h.Etcd != nil {
		probe("etcd", metrics.EtcdUp, func() error { return h.Etcd.Ping(ctx) })
	}
	return out
}

// Healthz 活性与依赖状态
func (h *HealthChecker) Healthz(c *gin.Context) {
	deps := h.check(c.Request.Context())
	status := 200
	for _, d := range deps {
		if !d.Up {
			status = 503
			break
		}
	}
	c.JSON(status, gin.H{"status": statusText(status), "deps": deps})
}

func statusText(code int) string {
	if code == 200 {
		return "ok"
	}
	return "degraded"
}
