package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/pkg/cache"
	"go-blogadmin/internal/repository/dao"

	"go.uber.org/zap"
)

// SuperAdminUID 超级管理员，跳过权限解析直接放行
const SuperAdminUID int64 = 1

const (
	permCacheKeyFmt = "perm:uid:%d"
	permCacheTTL    = 10 * time.Minute
)

// PermissionService 把用户的角色集合展开为去重后的权限字符串集合
type PermissionService struct {
	RoleDAO *dao.RoleDAO
	MenuDAO *dao.MenuDAO
	Cache   cache.Cache
	Log     *logging.Logger
}

func NewPermissionService(roleDAO *dao.RoleDAO, menuDAO *dao.MenuDAO, c cache.Cache, log *logging.Logger) *PermissionService {
	return &PermissionService{RoleDAO: roleDAO, MenuDAO: menuDAO, Cache: c, Log: log}
}

// GetUserPermissions 解析用户可用的全部权限标识。
// 无角色或角色无菜单返回空集合而非错误；结果按字典序排序保证稳定。
func (s *PermissionService) GetUserPermissions(ctx context.Context, uid int64) ([]string, error) {
	key := fmt.Sprintf(permCacheKeyFmt, uid)
	if cached, err := s.Cache.Get(ctx, key); err == nil && cached != "" {
		if cache.IsNilSentinel(cached) {
			return []string{}, nil
		}
		var perms []string
		if err := json.Unmarshal([]byte(cached), &perms); err == nil {
			return perms, nil
		}
		// 缓存损坏走回源
		s.Log.WithContext(ctx).Warn("perm_cache_decode_failed", zap.Int64("uid", uid))
	}

	perms, err := s.resolve(ctx, uid)
	if err != nil {
		return nil, err
	}

	if len(perms) == 0 {
		_ = s.Cache.SetEX(ctx, key, cache.WrapNil(true), cache.JitterTTL(permCacheTTL))
		return []string{}, nil
	}
	if buf, err := json.Marshal(perms); err == nil {
		_ = s.Cache.SetEX(ctx, key, string(buf), cache.JitterTTL(permCacheTTL))
	}
	return perms, nil
}

func (s *PermissionService) resolve(ctx context.Context, uid int64) ([]string, error) {
	var menus []model.Menu
	if uid == SuperAdminUID {
		all, err := s.MenuDAO.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		menus = all
	} else {
		roleIDs, err := s.RoleDAO.ListRoleIDsByUser(ctx, uid)
		if err != nil {
			return nil, err
		}
		if len(roleIDs) == 0 {
			return []string{}, nil
		}
		menuIDs, err := s.RoleDAO.ListMenuIDsByRoles(ctx, roleIDs)
		if err != nil {
			return nil, err
		}
		if len(menuIDs) == 0 {
			return []string{}, nil
		}
		menus, err = s.MenuDAO.ListByIDs(ctx, menuIDs)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{})
	perms := make([]string, 0, len(menus))
	for i := range menus {
		for _, p := range menus[i].PermList() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			perms = append(perms, p)
		}
	}
	sort.Strings(perms)
	return perms, nil
}

// HasPermission 校验单个权限标识，超级管理员恒为真
func (s *PermissionService) HasPermission(ctx context.Context, uid int64, perm string) (bool, error) {
	if uid == SuperAdminUID {
		return true, nil
	}
	perms, err := s.GetUserPermissions(ctx, uid)
	if err != nil {
		return false, err
	}
	i := sort.SearchStrings(perms, perm)
	return i < len(perms) && perms[i] == perm, nil
}

// Invalidate 用户角色变更后失效其权限缓存
func (s *PermissionService) Invalidate(ctx context.Context, uids ...int64) {
	if len(uids) == 0 {
		return
	}
	keys := make([]string, 0, len(uids))
	for _, uid := range uids {
		keys = append(keys, fmt.Sprintf(permCacheKeyFmt, uid))
	}
	if err := s.Cache.Del(ctx, keys...); err != nil {
		s.Log.WithContext(ctx).Warn("perm_cache_invalidate_failed",
			zap.Int("count", len(keys)), zap.Error(err))
		return
	}
	metrics.PermissionInvalidateTotal.WithLabelValues("user").Inc()
	metrics.PermissionInvalidateUsersTotal.Add(float64(len(uids)))
}

// InvalidateByRole 角色的菜单绑定变更后，失效该角色下全部用户的缓存
func (s *PermissionService) InvalidateByRole(ctx context.Context, rid int64) error {
	uids, err := s.RoleDAO.ListUserIDsByRole(ctx, rid)
	if err != nil {
		return err
	}
	if len(uids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(uids))
	for _, uid := range uids {
		keys = append(keys, fmt.Sprintf(permCacheKeyFmt, uid))
	}
	if err := s.Cache.Del(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate perms by role rid=%d: %w", rid, err)
	}
	metrics.PermissionInvalidateTotal.WithLabelValues("role").Inc()
	metrics.PermissionInvalidateUsersTotal.Add(float64(len(uids)))
	s.Log.WithContext(ctx).Info("perm_cache_invalidated_by_role",
		zap.Int64("role_id", rid), zap.Int("users", len(uids)))
	return nil
}
