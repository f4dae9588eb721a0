package service

import (
	"context"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/repository/dao"
	rds "go-blogadmin/internal/repository/redis"
)

// LogService 操作日志与访问日志查询
type LogService struct {
	OpDAO    *dao.OperationLogDAO
	VisitDAO *dao.VisitLogDAO
	Redis    *rds.Client
}

func NewLogService(op *dao.OperationLogDAO, visit *dao.VisitLogDAO, r *rds.Client) *LogService {
	return &LogService{OpDAO: op, VisitDAO: visit, Redis: r}
}

func (s *LogService) ListOperations(ctx context.Context, keyword string, page, size int) ([]model.OperationLog, int64, error) {
	return s.OpDAO.List(ctx, keyword, page, size)
}

func (s *LogService) DeleteOperations(ctx context.Context, ids []int64) error {
	return s.OpDAO.Delete(ctx, ids)
}

func (s *LogService) ListVisits(ctx context.Context, page, size int) ([]model.VisitLog, int64, error) {
	return s.VisitDAO.List(ctx, page, size)
}

// ReportVisit 前台页面访问上报：Redis 计数加访问日志落库
func (s *LogService) ReportVisit(ctx context.Context, page, ip, ua string) error {
	s.Redis.RecordVisit(ctx, page, ip)
	return s.VisitDAO.Create(ctx, &model.VisitLog{
		Page:       page,
		IP:         ip,
		UA:         ua,
		CreateTime: time.Now().Unix(),
	})
}
