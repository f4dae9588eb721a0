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

type RoleDAO struct{ DB *gorm.DB }

func NewRoleDAO(db *gorm.DB) *RoleDAO { return &RoleDAO{DB: db} }

func (d *RoleDAO) tracer() trace.Tracer { return otel.Tracer("dao.role") }

// ListRoleIDsByUser 用户的角色 ID 集合；无记录返回空切片
func (d *RoleDAO) ListRoleIDsByUser(ctx context.Context, uid int64) ([]int64, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListRoleIDsByUser")
	defer span.End()
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ?", uid).Order("role_id").Pluck("role_id", &ids).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list role ids by user uid=%d: %w", uid, err)
	}
	return ids, nil
}

// ListRolesByUser 解析用户的角色记录，按 id 升序保证结果稳定
func (d *RoleDAO) ListRolesByUser(ctx context.Context, uid int64) ([]model.Role, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListRolesByUser")
	defer span.End()
	ids, err := d.ListRoleIDsByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Role{}, nil
	}
	var roles []model.Role
	if err := d.DB.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&roles).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list roles by user uid=%d: %w", uid, err)
	}
	return roles, nil
}

// ListMenuIDsByRoles 角色集合可达的菜单 ID（去重）
func (d *RoleDAO) ListMenuIDsByRoles(ctx context.Context, roleIDs []int64) ([]int64, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListMenuIDsByRoles")
	defer span.End()
	if len(roleIDs) == 0 {
		return []int64{}, nil
	}
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.RoleMenu{}).
		Where("role_id IN ?", roleIDs).Distinct().Order("menu_id").Pluck("menu_id", &ids).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list menu ids by roles: %w", err)
	}
	return ids, nil
}

// ListUserIDsByRole 角色下的用户 ID（权限缓存按角色失效时使用）
func (d *RoleDAO) ListUserIDsByRole(ctx context.Context, rid int64) ([]int64, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListUserIDsByRole")
	defer span.End()
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.UserRole{}).
		Where("role_id = ?", rid).Pluck("user_id", &ids).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list user ids by role rid=%d: %w", rid, err)
	}
	return ids, nil
}

// ListRoleIDsByUsers 批量加载用户-角色关系
func (d *RoleDAO) ListRoleIDsByUsers(ctx context.Context, uids []int64) (map[int64][]int64, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListRoleIDsByUsers")
	defer span.End()
	res := make(map[int64][]int64)
	if len(uids) == 0 {
		return res, nil
	}
	var rows []model.UserRole
	if err := d.DB.WithContext(ctx).Where("user_id IN ?", uids).Find(&rows).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list role ids by users: %w", err)
	}
	for _, r := range rows {
		res[r.UserID] = append(res[r.UserID], r.RoleID)
	}
	return res, nil
}

// ReplaceUserRoles 整体替换用户的角色（删除后重插），需在外层事务中调用
func (d *RoleDAO) ReplaceUserRoles(ctx context.Context, tx *gorm.DB, uid int64, roleIDs []int64) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ReplaceUserRoles")
	defer span.End()
	if tx == nil {
		tx = d.DB
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", uid).Delete(&model.UserRole{}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace user roles (delete) uid=%d: %w", uid, err)
	}
	if len(roleIDs) == 0 {
		return nil
	}
	rows := make([]model.UserRole, 0, len(roleIDs))
	for _, rid := range roleIDs {
		rows = append(rows, model.UserRole{UserID: uid, RoleID: rid})
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace user roles (insert) uid=%d: %w", uid, err)
	}
	return nil
}

// ReplaceRoleMenus 整体替换角色的菜单，需在外层事务中调用
func (d *RoleDAO) ReplaceRoleMenus(ctx context.Context, tx *gorm.DB, rid int64, menuIDs []int64) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ReplaceRoleMenus")
	defer span.End()
	if tx == nil {
		tx = d.DB
	}
	if err := tx.WithContext(ctx).Where("role_id = ?", rid).Delete(&model.RoleMenu{}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace role menus (delete) rid=%d: %w", rid, err)
	}
	if len(menuIDs) == 0 {
		return nil
	}
	rows := make([]model.RoleMenu, 0, len(menuIDs))
	for _, mid := range menuIDs {
		rows = append(rows, model.RoleMenu{RoleID: rid, MenuID: mid})
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace role menus (insert) rid=%d: %w", rid, err)
	}
	return nil
}

// ===== 角色本体 CRUD =====

func (d *RoleDAO) List(ctx context.Context) ([]model.Role, error) {
	var list []model.Role
	if err := d.DB.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return list, nil
}

func (d *RoleDAO) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	var r model.Role
	if err := d.DB.WithContext(ctx).First(&r, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find role id=%d: %w", id, err)
	}
	return &r, nil
}

func (d *RoleDAO) FindByLabel(ctx context.Context, label string) (*model.Role, error) {
	var r model.Role
	if err := d.DB.WithContext(ctx).Where("role_label = ?", label).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find role label=%s: %w", label, err)
	}
	return &r, nil
}

func (d *RoleDAO) Create(ctx context.Context, r *model.Role) error {
	if err := d.DB.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

func (d *RoleDAO) Update(ctx context.Context, r *model.Role) error {
	if err := d.DB.WithContext(ctx).Model(&model.Role{}).Where("id = ?", r.ID).Updates(r).Error; err != nil {
		return fmt.Errorf("update role id=%d: %w", r.ID, err)
	}
	return nil
}

// DeleteCascade 删除角色并级联清理其 UserRole / RoleMenu 关系
func (d *RoleDAO) DeleteCascade(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.DeleteCascade")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Role{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", id).Delete(&model.RoleMenu{}).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete role id=%d: %w", id, err)
	}
	return nil
}
