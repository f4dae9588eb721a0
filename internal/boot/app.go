package boot

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go-blogadmin/internal/chat"
	"go-blogadmin/internal/config"
	"go-blogadmin/internal/consumer/oplog"
	"go-blogadmin/internal/discovery/etcd"
	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/mq/kafka"
	"go-blogadmin/internal/observability"
	"go-blogadmin/internal/repository/postgres"
	redisrepo "go-blogadmin/internal/repository/redis"
	"go-blogadmin/internal/scheduler"
	httpSrv "go-blogadmin/internal/server/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// App 进程级组件聚合与生命周期管理
type App struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *gorm.DB
	Redis  *redisrepo.Client
	Kafka  *kafka.Producer
	Etcd   *etcd.Client
	Server *httpSrv.Server

	Hub       *chat.Hub
	Scheduler *scheduler.Scheduler
	OplogC    *oplog.Consumer

	serviceKey   string
	leaseID      clientv3.LeaseID
	traceFlush   func(context.Context) error
	cancelWorker context.CancelFunc
}

func NewApp(
	c *config.Config,
	l *logging.Logger,
	db *gorm.DB,
	r *redisrepo.Client,
	k *kafka.Producer,
	e *etcd.Client,
	srv *httpSrv.Server,
	hub *chat.Hub,
	sched *scheduler.Scheduler,
	oplogC *oplog.Consumer,
) (*App, error) {
	app := &App{
		Config: c, Logger: l, DB: db, Redis: r, Kafka: k, Etcd: e,
		Server: srv, Hub: hub, Scheduler: sched, OplogC: oplogC,
	}

	if c.Postgres.AutoMigrate {
		if err := postgres.AutoMigrateModels(db,
			&model.User{},
			&model.Role{},
			&model.UserRole{},
			&model.Menu{},
			&model.RoleMenu{},
			&model.Article{},
			&model.ArticleTag{},
			&model.Category{},
			&model.Tag{},
			&model.Comment{},
			&model.Message{},
			&model.Talk{},
			&model.FriendLink{},
			&model.SiteConfig{},
			&model.OperationLog{},
			&model.VisitLog{},
			&model.ChatRecord{},
		); err != nil {
			l.Error("auto_migrate_failed", zap.Error(err))
		}
	}

	flush, err := observability.SetupTracing(context.Background(), observability.TracingOptions{
		Enable:       c.OTel.Enable,
		Endpoint:     c.OTel.Endpoint,
		Insecure:     c.OTel.Insecure,
		SamplerRatio: c.OTel.SamplerRatio,
		ServiceName:  c.AppMeta.Name,
		Env:          c.AppMeta.Env,
		Version:      c.AppMeta.Version,
	})
	if err != nil {
		l.Error("otel_init_failed", zap.Error(err))
	} else {
		app.traceFlush = flush
	}
	if c.OTel.Enable {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			l.Error("gorm_tracing_plugin_failed", zap.Error(err))
		}
		if err := redisotel.InstrumentTracing(r.Client); err != nil {
			l.Error("redis_tracing_hook_failed", zap.Error(err))
		}
	}

	return app, nil
}

// Run 启动后台组件并阻塞在 HTTP 监听上
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWorker = cancel

	go a.Hub.Run()

	if err := a.Scheduler.Start(); err != nil {
		a.Logger.Error("scheduler_start_failed", zap.Error(err))
	}

	if a.OplogC != nil {
		go func() {
			if err := a.OplogC.Start(ctx); err != nil {
				a.Logger.Error("oplog_consumer_stopped", zap.Error(err))
			}
		}()
	}

	if a.Etcd != nil {
		go a.registerService(ctx)
	}

	a.pingDependencies(ctx)
	return a.Server.Start()
}

// pingDependencies 启动时探测核心依赖，失败只告警不中断
func (a *App) pingDependencies(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.PingContext(ctx); err != nil {
			metrics.DBUp.Set(0)
			a.Logger.Error("postgres_ping_failed", zap.Error(err))
		} else {
			metrics.DBUp.Set(1)
		}
	}
	if err := a.Redis.Ping(ctx); err != nil {
		metrics.RedisUp.Set(0)
		a.Logger.Error("redis_ping_failed", zap.Error(err), zap.String("addr", a.Config.Redis.Addr))
	} else {
		metrics.RedisUp.Set(1)
	}
}

// registerService 带重试的 etcd 服务注册
func (a *App) registerService(ctx context.Context) {
	port := ""
	if addr := a.Config.HTTP.Addr; addr != "" {
		if addr[0] == ':' {
			port = addr[1:]
		} else if _, p, err := net.SplitHostPort(addr); err == nil {
			port = p
		}
	}
	ip := firstNonLoopbackIPv4()
	if ip == "" {
		ip = "127.0.0.1"
	}
	key := fmt.Sprintf("/services/blogadmin/%s/%s/%s:%s", a.Config.AppMeta.Env, a.Config.AppMeta.Version, ip, port)
	meta, _ := json.Marshal(map[string]interface{}{
		"instance_id":  uuid.NewString(),
		"env":          a.Config.AppMeta.Env,
		"version":      a.Config.AppMeta.Version,
		"ip":           ip,
		"port":         port,
		"startup_unix": time.Now().Unix(),
	})

	for attempt := 1; attempt <= 5; attempt++ {
		leaseID, err := a.Etcd.Register(ctx, key, string(meta), int64(a.Config.Etcd.TTL))
		if err == nil {
			a.serviceKey = key
			a.leaseID = leaseID
			metrics.EtcdUp.Set(1)
			a.Logger.Info("etcd_registered", zap.String("key", key))
			return
		}
		backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
		a.Logger.Error("etcd_register_retry", zap.Error(err), zap.Int("attempt", attempt), zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
	a.Logger.Error("etcd_register_failed", zap.String("key", key))
}

// Close 逆序停机：HTTP、后台组件、外部连接
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("http_shutdown_error", zap.Error(err))
	}
	if a.cancelWorker != nil {
		a.cancelWorker()
	}
	a.Scheduler.Stop(ctx)
	a.Hub.Close()
	if a.OplogC != nil {
		if err := a.OplogC.Close(); err != nil {
			a.Logger.Error("oplog_consumer_close_error", zap.Error(err))
		}
	}

	if a.Etcd != nil {
		if a.serviceKey != "" {
			_ = a.Etcd.Deregister(ctx, a.serviceKey, a.leaseID)
			metrics.EtcdUp.Set(0)
		}
		if err := a.Etcd.Close(); err != nil {
			a.Logger.Error("etcd_close_error", zap.Error(err))
		}
	}
	if a.Kafka != nil {
		if err := a.Kafka.Close(); err != nil {
			a.Logger.Error("kafka_close_error", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("redis_close_error", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.traceFlush != nil {
		if err := a.traceFlush(ctx); err != nil {
			a.Logger.Error("otel_shutdown_error", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}

func firstNonLoopbackIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if v4 := ipnet.IP.To4(); v4 != nil {
				return v4.String()
			}
		}
	}
	return ""
}
