package dao

import (
	"context"
	"fmt"

	"go-blogadmin/internal/domain/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type MenuDAO struct{ DB *gorm.DB }

func NewMenuDAO(db *gorm.DB) *MenuDAO { return &MenuDAO{DB: db} }

func (d *MenuDAO) tracer() trace.Tracer { return otel.Tracer("dao.menu") }

// ListAll 全量菜单，parent_id 优先、同级按 order_num，树构建依赖该序
func (d *MenuDAO) ListAll(ctx context.Context) ([]model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.ListAll")
	defer span.End()
	var list []model.Menu
	if err := d.DB.WithContext(ctx).Order("parent_id, order_num, id").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list all menus: %w", err)
	}
	return list, nil
}

// ListByIDs 按 ID 集合取菜单，types 非空时附加类型过滤
func (d *MenuDAO) ListByIDs(ctx context.Context, ids []int64, types ...string) ([]model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.ListByIDs")
	defer span.End()
	if len(ids) == 0 {
		return []model.Menu{}, nil
	}
	q := d.DB.WithContext(ctx).Where("id IN ?", ids)
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	var list []model.Menu
	if err := q.Order("parent_id, order_num, id").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list menus by ids: %w", err)
	}
	return list, nil
}

// CountChildren 直接子节点数量，删除校验用
func (d *MenuDAO) CountChildren(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.Menu{}).Where("parent_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count menu children id=%d: %w", id, err)
	}
	return n, nil
}

func (d *MenuDAO) FindByID(ctx context.Context, id int64) (*model.Menu, error) {
	var m model.Menu
	if err := d.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find menu id=%d: %w", id, err)
	}
	return &m, nil
}

func (d *MenuDAO) Create(ctx context.Context, m *model.Menu) error {
	if err := d.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

func (d *MenuDAO) Update(ctx context.Context, m *model.Menu) error {
	// Select 全列更新，0 值字段（hidden、order_num）也要落库
	if err := d.DB.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", m.ID).
		Select("name", "path", "component", "icon", "parent_id", "order_num", "hidden", "type", "perms").
		Updates(m).Error; err != nil {
		return fmt.Errorf("update menu id=%d: %w", m.ID, err)
	}
	return nil
}

// Delete 删除菜单并清理 RoleMenu 引用，调用方需先确认无子节点
func (d *MenuDAO) Delete(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.Delete")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Menu{}, id).Error; err != nil {
			return err
		}
		return tx.Where("menu_id = ?", id).Delete(&model.RoleMenu{}).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete menu id=%d: %w", id, err)
	}
	return nil
}
