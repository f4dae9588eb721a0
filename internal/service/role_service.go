package service

import (
	"context"
	"errors"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRoleLabelExists 角色标识重复
var ErrRoleLabelExists = errors.New("role label already exists")

// RoleService 角色管理与 用户-角色 / 角色-菜单 绑定
type RoleService struct {
	RoleDAO *dao.RoleDAO
	Perm    *PermissionService
	Log     *logging.Logger
}

func NewRoleService(roleDAO *dao.RoleDAO, perm *PermissionService, log *logging.Logger) *RoleService {
	return &RoleService{RoleDAO: roleDAO, Perm: perm, Log: log}
}

func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	return s.RoleDAO.List(ctx)
}

// ListRolesByUser 用户的角色集合，无绑定返回空切片
func (s *RoleService) ListRolesByUser(ctx context.Context, uid int64) ([]model.Role, error) {
	return s.RoleDAO.ListRolesByUser(ctx, uid)
}

func (s *RoleService) Create(ctx context.Context, r *model.Role) error {
	exist, err := s.RoleDAO.FindByLabel(ctx, r.RoleLabel)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrRoleLabelExists
	}
	if err := s.RoleDAO.Create(ctx, r); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("role_created", zap.Int64("role_id", r.ID), zap.String("label", r.RoleLabel))
	return nil
}

func (s *RoleService) Update(ctx context.Context, r *model.Role) error {
	exist, err := s.RoleDAO.FindByLabel(ctx, r.RoleLabel)
	if err != nil {
		return err
	}
	if exist != nil && exist.ID != r.ID {
		return ErrRoleLabelExists
	}
	return s.RoleDAO.Update(ctx, r)
}

// Delete 删除角色并级联清理绑定，受影响用户的权限缓存先行失效
func (s *RoleService) Delete(ctx context.Context, rid int64) error {
	if err := s.Perm.InvalidateByRole(ctx, rid); err != nil {
		s.Log.WithContext(ctx).Warn("role_delete_invalidate_failed", zap.Int64("role_id", rid), zap.Error(err))
	}
	if err := s.RoleDAO.DeleteCascade(ctx, rid); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("role_deleted", zap.Int64("role_id", rid))
	return nil
}

// AssignUserRoles 整体替换用户的角色绑定
func (s *RoleService) AssignUserRoles(ctx context.Context, uid int64, roleIDs []int64) error {
	err := s.RoleDAO.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.RoleDAO.ReplaceUserRoles(ctx, tx, uid, roleIDs)
	})
	if err != nil {
		return err
	}
	s.Perm.Invalidate(ctx, uid)
	s.Log.WithContext(ctx).Info("user_roles_assigned",
		zap.Int64("uid", uid), zap.Int("roles", len(roleIDs)))
	return nil
}

// AssignRoleMenus 整体替换角色的菜单绑定
func (s *RoleService) AssignRoleMenus(ctx context.Context, rid int64, menuIDs []int64) error {
	err := s.RoleDAO.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.RoleDAO.ReplaceRoleMenus(ctx, tx, rid, menuIDs)
	})
	if err != nil {
		return err
	}
	if err := s.Perm.InvalidateByRole(ctx, rid); err != nil {
		s.Log.WithContext(ctx).Warn("role_menus_invalidate_failed", zap.Int64("role_id", rid), zap.Error(err))
	}
	s.Log.WithContext(ctx).Info("role_menus_assigned",
		zap.Int64("role_id", rid), zap.Int("menus", len(menuIDs)))
	return nil
}

// ListRoleMenuIDs 角色当前绑定的菜单 ID，编辑回显用
func (s *RoleService) ListRoleMenuIDs(ctx context.Context, rid int64) ([]int64, error) {
	return s.RoleDAO.ListMenuIDsByRoles(ctx, []int64{rid})
}
