package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distribution",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})
	Inflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "In-flight HTTP requests",
	})
	DBUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_up",
		Help: "Database connectivity (1=up,0=down)",
	})
	RedisUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "redis_up",
		Help: "Redis connectivity (1=up,0=down)",
	})
	KafkaUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kafka_up",
		Help: "Kafka connectivity (1=up,0=down)",
	})
	EtcdUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "etcd_up",
		Help: "Etcd connectivity (1=up,0=down)",
	})
	DependencyCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dependency_check_duration_seconds",
		Help:    "Latency of dependency health checks",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.4, 0.8, 1},
	}, []string{"dep"})

	// 菜单树构建时丢弃的悬挂节点（parent_id 指向不存在的菜单）
	MenuTreeOrphanTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_tree_orphan_dropped_total",
		Help: "Menu nodes dropped during tree build due to dangling parent_id",
	})
	PermissionInvalidateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "permission_cache_invalidate_total",
		Help: "Permission cache invalidations by scope",
	}, []string{"scope"})
	PermissionInvalidateUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "permission_cache_invalidate_users_total",
		Help: "Users affected by role-scoped permission invalidations",
	})

	ChatOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_online_clients",
		Help: "Connected chat room clients",
	})
	ChatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Chat room messages by kind",
	}, []string{"kind"})

	CronJobRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cron_job_runs_total",
		Help: "Scheduled job executions by job and result",
	}, []string{"job", "result"})
	CronJobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cron_job_duration_seconds",
		Help:    "Scheduled job execution duration",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	}, []string{"job"})
)
