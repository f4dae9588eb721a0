package service

import (
	"context"
	"errors"
	"fmt"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/repository/dao"

	"go.uber.org/zap"
)

var (
	// ErrMenuHasChildren 存在子菜单时拒绝删除
	ErrMenuHasChildren = errors.New("menu has children")
	// ErrMenuNotFound 菜单不存在
	ErrMenuNotFound = errors.New("menu not found")
)

// RouteNode 前端路由节点，由菜单树增强而来
type RouteNode struct {
	Name       string       `json:"name"`
	Path       string       `json:"path"`
	Component  string       `json:"component"`
	Redirect   string       `json:"redirect,omitempty"`
	AlwaysShow bool         `json:"alwaysShow,omitempty"`
	Meta       RouteMeta    `json:"meta"`
	Children   []*RouteNode `json:"children,omitempty"`
}

// RouteMeta 路由元信息
type RouteMeta struct {
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Hidden bool   `json:"hidden"`
}

// MenuService 菜单管理与用户路由树生成
type MenuService struct {
	MenuDAO *dao.MenuDAO
	RoleDAO *dao.RoleDAO
	Perm    *PermissionService
	Log     *logging.Logger
}

func NewMenuService(menuDAO *dao.MenuDAO, roleDAO *dao.RoleDAO, perm *PermissionService, log *logging.Logger) *MenuService {
	return &MenuService{MenuDAO: menuDAO, RoleDAO: roleDAO, Perm: perm, Log: log}
}

// ListMenuTree 后台管理用全量菜单树，含按钮节点
func (s *MenuService) ListMenuTree(ctx context.Context) ([]*MenuNode, error) {
	list, err := s.MenuDAO.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(list, s.orphanReporter(ctx)), nil
}

// GetUserMenuTree 用户可见的前端路由树。
// 只取目录和页面两类（按钮不渲染）；无角色或无菜单返回空切片。
func (s *MenuService) GetUserMenuTree(ctx context.Context, uid int64) ([]*RouteNode, error) {
	var menus []model.Menu
	var err error
	if uid == SuperAdminUID {
		all, lerr := s.MenuDAO.ListAll(ctx)
		if lerr != nil {
			return nil, lerr
		}
		menus = make([]model.Menu, 0, len(all))
		for _, m := range all {
			if m.Type == model.MenuTypeDir || m.Type == model.MenuTypeMenu {
				menus = append(menus, m)
			}
		}
	} else {
		roleIDs, rerr := s.RoleDAO.ListRoleIDsByUser(ctx, uid)
		if rerr != nil {
			return nil, rerr
		}
		if len(roleIDs) == 0 {
			return []*RouteNode{}, nil
		}
		menuIDs, merr := s.RoleDAO.ListMenuIDsByRoles(ctx, roleIDs)
		if merr != nil {
			return nil, merr
		}
		if len(menuIDs) == 0 {
			return []*RouteNode{}, nil
		}
		menus, err = s.MenuDAO.ListByIDs(ctx, menuIDs, model.MenuTypeDir, model.MenuTypeMenu)
		if err != nil {
			return nil, err
		}
	}
	tree := BuildMenuTree(menus, s.orphanReporter(ctx))
	return buildRoutes(tree, true), nil
}

func (s *MenuService) orphanReporter(ctx context.Context) func(model.Menu) {
	return func(m model.Menu) {
		metrics.MenuTreeOrphanTotal.Inc()
		s.Log.WithContext(ctx).Warn("menu_orphan_dropped",
			zap.Int64("menu_id", m.ID), zap.Int64("parent_id", m.ParentID), zap.String("name", m.Name))
	}
}

// buildRoutes 把菜单树转成路由树。
// 顶层目录路径加 "/" 前缀、组件固定 Layout，有子节点时常显并禁用重定向；
// 页面节点用自身相对路径和组件；hidden 只进 meta，不影响树结构。
func buildRoutes(nodes []*MenuNode, top bool) []*RouteNode {
	out := make([]*RouteNode, 0, len(nodes))
	for _, n := range nodes {
		r := &RouteNode{
			Name:      n.Name,
			Path:      n.Path,
			Component: n.Component,
			Meta:      RouteMeta{Title: n.Name, Icon: n.Icon, Hidden: n.Hidden == 1},
		}
		if n.Type == model.MenuTypeDir {
			if top {
				r.Path = "/" + n.Path
			}
			r.Component = "Layout"
			if len(n.Children) > 0 {
				r.AlwaysShow = true
				r.Redirect = "noRedirect"
			}
		}
		r.Children = buildRoutes(n.Children, false)
		if len(r.Children) == 0 {
			r.Children = nil
		}
		out = append(out, r)
	}
	return out
}

// ===== 菜单 CRUD =====

func (s *MenuService) Create(ctx context.Context, m *model.Menu) error {
	if err := s.MenuDAO.Create(ctx, m); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("menu_created", zap.Int64("menu_id", m.ID), zap.String("name", m.Name))
	return nil
}

func (s *MenuService) Update(ctx context.Context, m *model.Menu) error {
	old, err := s.MenuDAO.FindByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrMenuNotFound
	}
	if err := s.MenuDAO.Update(ctx, m); err != nil {
		return err
	}
	// 权限串可能变化，粗粒度失效全部角色的用户
	if err := s.invalidateMenuUsers(ctx, m.ID); err != nil {
		s.Log.WithContext(ctx).Warn("menu_update_invalidate_failed", zap.Int64("menu_id", m.ID), zap.Error(err))
	}
	return nil
}

// Delete 删除菜单；有子节点时返回 ErrMenuHasChildren
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	n, err := s.MenuDAO.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("menu id=%d: %w", id, ErrMenuHasChildren)
	}
	if err := s.invalidateMenuUsers(ctx, id); err != nil {
		s.Log.WithContext(ctx).Warn("menu_delete_invalidate_failed", zap.Int64("menu_id", id), zap.Error(err))
	}
	if err := s.MenuDAO.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("menu_deleted", zap.Int64("menu_id", id))
	return nil
}

// invalidateMenuUsers 失效引用该菜单的全部角色下的用户权限缓存
func (s *MenuService) invalidateMenuUsers(ctx context.Context, menuID int64) error {
	var rids []int64
	if err := s.MenuDAO.DB.WithContext(ctx).Model(&model.RoleMenu{}).
		Where("menu_id = ?", menuID).Distinct().Pluck("role_id", &rids).Error; err != nil {
		return fmt.Errorf("list roles by menu id=%d: %w", menuID, err)
	}
	for _, rid := range rids {
		if err := s.Perm.InvalidateByRole(ctx, rid); err != nil {
			return err
		}
	}
	return nil
}
