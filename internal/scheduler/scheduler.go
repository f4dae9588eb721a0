package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/repository/dao"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 调度配置
type Options struct {
	BackupSpec  string // 数据备份 cron 表达式
	BackupDir   string
	CleanupSpec string // 日志清理 cron 表达式
	LogKeepDays int
}

// Scheduler 站内定时任务：数据备份与日志清理
type Scheduler struct {
	cron     *cron.Cron
	db       *gorm.DB
	opDAO    *dao.OperationLogDAO
	visitDAO *dao.VisitLogDAO
	opts     Options
	log      *logging.Logger
}

func New(db *gorm.DB, opDAO *dao.OperationLogDAO, visitDAO *dao.VisitLogDAO, opts Options, log *logging.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		db:       db,
		opDAO:    opDAO,
		visitDAO: visitDAO,
		opts:     opts,
		log:      log,
	}
}

// Start 注册任务并启动调度
func (s *Scheduler) Start() error {
	if s.opts.BackupSpec != "" {
		if _, err := s.cron.AddFunc(s.opts.BackupSpec, s.wrap("backup", s.runBackup)); err != nil {
			return fmt.Errorf("register backup job: %w", err)
		}
	}
	if s.opts.CleanupSpec != "" {
		if _, err := s.cron.AddFunc(s.opts.CleanupSpec, s.wrap("log_cleanup", s.runLogCleanup)); err != nil {
			return fmt.Errorf("register cleanup job: %w", err)
		}
	}
	s.cron.Start()
	s.log.Info("scheduler_started",
		zap.String("backup_spec", s.opts.BackupSpec),
		zap.String("cleanup_spec", s.opts.CleanupSpec))
	return nil
}

// Stop 停止调度并等待在跑任务结束
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler_stop_timeout")
	}
}

func (s *Scheduler) wrap(name string, fn func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		start := time.Now()
		err := fn(ctx)
		metrics.CronJobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.CronJobRunTotal.WithLabelValues(name, "error").Inc()
			s.log.Error("cron_job_failed", zap.String("job", name), zap.Error(err))
			return
		}
		metrics.CronJobRunTotal.WithLabelValues(name, "ok").Inc()
		s.log.Info("cron_job_done", zap.String("job", name),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// runBackup 全量导出核心表为带时间戳的 JSON 文件
func (s *Scheduler) runBackup(ctx context.Context) error {
	dir := filepath.Join(s.opts.BackupDir, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	if err := dumpTable(ctx, s.db, dir, "articles.json", &[]model.Article{}); err != nil {
		return err
	}
	if err := dumpTable(ctx, s.db, dir, "categories.json", &[]model.Category{}); err != nil {
		return err
	}
	if err := dumpTable(ctx, s.db, dir, "tags.json", &[]model.Tag{}); err != nil {
		return err
	}
	if err := dumpTable(ctx, s.db, dir, "comments.json", &[]model.Comment{}); err != nil {
		return err
	}
	if err := dumpTable(ctx, s.db, dir, "menus.json", &[]model.Menu{}); err != nil {
		return err
	}
	if err := dumpTable(ctx, s.db, dir, "roles.json", &[]model.Role{}); err != nil {
		return err
	}
	return nil
}

func dumpTable(ctx context.Context, db *gorm.DB, dir, name string, dest interface{}) error {
	if err := db.WithContext(ctx).Find(dest).Error; err != nil {
		return fmt.Errorf("dump %s: %w", name, err)
	}
	buf, err := json.MarshalIndent(dest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// runLogCleanup 删除保留期之外的操作日志与访问日志
func (s *Scheduler) runLogCleanup(ctx context.Context) error {
	keep := s.opts.LogKeepDays
	if keep <= 0 {
		keep = 30
	}
	deadline := time.Now().AddDate(0, 0, -keep)
	opN, err := s.opDAO.DeleteBefore(ctx, deadline)
	if err != nil {
		return err
	}
	visitN, err := s.visitDAO.DeleteBefore(ctx, deadline)
	if err != nil {
		return err
	}
	s.log.Info("log_cleanup_done",
		zap.Int64("operation_logs", opN), zap.Int64("visit_logs", visitN),
		zap.Time("deadline", deadline))
	return nil
}
