package boot

import (
	"time"

	"go-blogadmin/internal/chat"
	"go-blogadmin/internal/config"
	"go-blogadmin/internal/consumer/oplog"
	"go-blogadmin/internal/discovery/etcd"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/mq/kafka"
	"go-blogadmin/internal/pkg/cache"
	"go-blogadmin/internal/repository/dao"
	"go-blogadmin/internal/repository/postgres"
	redisrepo "go-blogadmin/internal/repository/redis"
	"go-blogadmin/internal/scheduler"
	"go-blogadmin/internal/search"
	jwtsec "go-blogadmin/internal/security/jwt"
	httpSrv "go-blogadmin/internal/server/http"
	"go-blogadmin/internal/server/http/handler"
	"go-blogadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProvideConfig wire 需要的带参包装
func ProvideConfig(path string) (*config.Config, error) { return config.Load(path) }

func NewLogger(c *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	})
}

func NewPostgres(c *config.Config) (*gorm.DB, error) {
	return postgres.New(postgres.Config{
		DSN:         c.Postgres.DSN,
		MaxOpen:     c.Postgres.MaxOpen,
		MaxIdle:     c.Postgres.MaxIdle,
		AutoMigrate: c.Postgres.AutoMigrate,
	})
}

func NewRedis(c *config.Config) *redisrepo.Client {
	return redisrepo.New(redisrepo.Config{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB})
}

// NewKafkaProducer 未配置 broker 时返回 nil，操作日志中间件自动跳过
func NewKafkaProducer(c *config.Config) *kafka.Producer {
	if len(c.Kafka.Brokers) == 0 {
		return nil
	}
	return kafka.NewProducer(kafka.Config{Brokers: c.Kafka.Brokers, Topic: c.Kafka.OpLogTopic})
}

func NewEtcd(c *config.Config) (*etcd.Client, error) {
	if len(c.Etcd.Endpoints) == 0 {
		return nil, nil
	}
	return etcd.New(etcd.Config{Endpoints: c.Etcd.Endpoints, TTL: c.Etcd.TTL})
}

func NewJWTManager(c *config.Config) *jwtsec.Manager {
	return jwtsec.NewManager(c.JWT.Secret, c.JWT.ExpireSeconds, c.JWT.Issuer)
}

// ProvideLayeredCache 通用缓存：L1 本地 60s，L2 Redis
func ProvideLayeredCache(r *redisrepo.Client) cache.Cache {
	return cache.NewLayered(cache.New(60*time.Second), cache.NewRedisAdapter(r))
}

func ProvideIndexer(c *config.Config, l *logging.Logger) (*search.ArticleIndexer, error) {
	return search.New(c.Elastic.Enable, c.Elastic.Addrs, c.Elastic.Username, c.Elastic.Password, c.Elastic.Index, l)
}

func ProvideAuthService(u *dao.UserDAO, rd *dao.RoleDAO, j *jwtsec.Manager, r *redisrepo.Client, c *config.Config, l *logging.Logger) *service.AuthService {
	return service.NewAuthService(u, rd, j, r, c.Redis.JTIPrefix, l)
}

func ProvideHub(recordDAO *dao.ChatRecordDAO, r *redisrepo.Client, c *config.Config, l *logging.Logger) *chat.Hub {
	return chat.NewHub(recordDAO, r, c.Chat.HistorySize, l)
}

func ProvideScheduler(db *gorm.DB, op *dao.OperationLogDAO, visit *dao.VisitLogDAO, c *config.Config, l *logging.Logger) *scheduler.Scheduler {
	return scheduler.New(db, op, visit, scheduler.Options{
		BackupSpec:  c.Cron.BackupSpec,
		BackupDir:   c.Cron.BackupDir,
		CleanupSpec: c.Cron.CleanupSpec,
		LogKeepDays: c.Cron.LogKeepDays,
	}, l)
}

// ProvideOplogConsumer 开关关闭或无 broker 时为 nil
func ProvideOplogConsumer(c *config.Config, op *dao.OperationLogDAO, l *logging.Logger) *oplog.Consumer {
	if !c.Kafka.StartConsumer || len(c.Kafka.Brokers) == 0 {
		return nil
	}
	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: c.Kafka.Brokers,
		GroupID: c.Kafka.OpLogGroupID,
		Topic:   c.Kafka.OpLogTopic,
	})
	return oplog.New(consumer, op, l)
}

func ProvideRouter(
	c *config.Config,
	hs *handler.Set,
	auth *service.AuthService,
	perm *service.PermissionService,
	health *httpSrv.HealthChecker,
	producer *kafka.Producer,
	l *logging.Logger,
) *gin.Engine {
	return httpSrv.NewRouter(c, hs, auth, perm, health, producer, l)
}

func ProvideServer(c *config.Config, engine *gin.Engine, l *logging.Logger) *httpSrv.Server {
	return httpSrv.NewServer(c.HTTP.Addr, engine, l)
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewLogger,
	NewPostgres,
	NewRedis,
	NewKafkaProducer,
	NewEtcd,
	NewJWTManager,
	ProvideLayeredCache,
	ProvideIndexer,
	// DAO
	dao.NewUserDAO,
	dao.NewRoleDAO,
	dao.NewMenuDAO,
	dao.NewArticleDAO,
	dao.NewCategoryDAO,
	dao.NewTagDAO,
	dao.NewCommentDAO,
	dao.NewMessageDAO,
	dao.NewTalkDAO,
	dao.NewFriendLinkDAO,
	dao.NewSiteConfigDAO,
	dao.NewOperationLogDAO,
	dao.NewVisitLogDAO,
	dao.NewChatRecordDAO,
	// Service
	service.NewPermissionService,
	service.NewMenuService,
	service.NewRoleService,
	service.NewUserService,
	service.NewArticleService,
	service.NewCategoryService,
	service.NewTagService,
	service.NewCommentService,
	service.NewMessageService,
	service.NewTalkService,
	service.NewFriendLinkService,
	service.NewSiteConfigService,
	service.NewLogService,
	service.NewStatsService,
	ProvideAuthService,
	// 周边组件
	ProvideHub,
	ProvideScheduler,
	ProvideOplogConsumer,
	// Handler
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewRoleHandler,
	handler.NewMenuHandler,
	handler.NewArticleHandler,
	handler.NewContentHandler,
	handler.NewLogHandler,
	handler.NewBlogHandler,
	handler.NewSet,
	// HTTP
	httpSrv.NewHealthChecker,
	ProvideRouter,
	ProvideServer,
	NewApp,
)
