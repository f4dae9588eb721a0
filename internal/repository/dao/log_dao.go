package dao

import (
	"context"
	"fmt"
	"time"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

// OperationLogDAO 操作日志，写入方为 Kafka 消费者
type OperationLogDAO struct{ DB *gorm.DB }

func NewOperationLogDAO(db *gorm.DB) *OperationLogDAO { return &OperationLogDAO{DB: db} }

func (d *OperationLogDAO) Create(ctx context.Context, l *model.OperationLog) error {
	if err := d.DB.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create operation log: %w", err)
	}
	return nil
}

func (d *OperationLogDAO) List(ctx context.Context, keyword string, page, size int) ([]model.OperationLog, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.OperationLog{})
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("action_name LIKE ? OR path LIKE ?", like, like)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count operation logs: %w", err)
	}
	var list []model.OperationLog
	if err := db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list operation logs: %w", err)
	}
	return list, total, nil
}

func (d *OperationLogDAO) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := d.DB.WithContext(ctx).Delete(&model.OperationLog{}, ids).Error; err != nil {
		return fmt.Errorf("delete operation logs: %w", err)
	}
	return nil
}

// DeleteBefore 清理早于截止时间的日志，返回删除行数
func (d *OperationLogDAO) DeleteBefore(ctx context.Context, deadline time.Time) (int64, error) {
	res := d.DB.WithContext(ctx).Where("create_time < ?", deadline.Unix()).Delete(&model.OperationLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete operation logs before %s: %w", deadline.Format(time.DateOnly), res.Error)
	}
	return res.RowsAffected, nil
}

// VisitLogDAO 访问日志
type VisitLogDAO struct{ DB *gorm.DB }

func NewVisitLogDAO(db *gorm.DB) *VisitLogDAO { return &VisitLogDAO{DB: db} }

func (d *VisitLogDAO) Create(ctx context.Context, l *model.VisitLog) error {
	if err := d.DB.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create visit log: %w", err)
	}
	return nil
}

func (d *VisitLogDAO) List(ctx context.Context, page, size int) ([]model.VisitLog, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.VisitLog{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count visit logs: %w", err)
	}
	var list []model.VisitLog
	if err := db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list visit logs: %w", err)
	}
	return list, total, nil
}

func (d *VisitLogDAO) DeleteBefore(ctx context.Context, deadline time.Time) (int64, error) {
	res := d.DB.WithContext(ctx).Where("create_time < ?", deadline.Unix()).Delete(&model.VisitLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete visit logs before %s: %w", deadline.Format(time.DateOnly), res.Error)
	}
	return res.RowsAffected, nil
}

// ChatRecordDAO 聊天记录
type ChatRecordDAO struct{ DB *gorm.DB }

func NewChatRecordDAO(db *gorm.DB) *ChatRecordDAO { return &ChatRecordDAO{DB: db} }

func (d *ChatRecordDAO) Create(ctx context.Context, r *model.ChatRecord) error {
	if err := d.DB.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create chat record: %w", err)
	}
	return nil
}

// ListRecent 最近 n 条记录，按时间升序返回
func (d *ChatRecordDAO) ListRecent(ctx context.Context, n int) ([]model.ChatRecord, error) {
	var list []model.ChatRecord
	if err := d.DB.WithContext(ctx).Order("id DESC").Limit(n).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recent chat records: %w", err)
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (d *ChatRecordDAO) Delete(ctx context.Context, id int64) error {
	if err := d.DB.WithContext(ctx).Delete(&model.ChatRecord{}, id).Error; err != nil {
		return fmt.Errorf("delete chat record id=%d: %w", id, err)
	}
	return nil
}
