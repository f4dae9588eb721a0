package service

import (
	"context"
	"testing"

	"go-blogadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserPermissions(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.permService()
	ctx := context.Background()

	perms, err := svc.GetUserPermissions(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"system:role:list", "system:role:save",
		"system:user:delete", "system:user:list",
	}, perms)

	// 重复调用命中缓存，结果一致
	again, err := svc.GetUserPermissions(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, perms, again)
}

func TestGetUserPermissionsNoRoles(t *testing.T) {
	e := newTestEnv(t)
	svc := e.permService()
	ctx := context.Background()

	perms, err := svc.GetUserPermissions(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, perms)
	assert.Len(t, perms, 0)

	// 空结果写哨兵后第二次仍为空且不报错
	perms, err = svc.GetUserPermissions(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, perms, 0)
}

func TestGetUserPermissionsDedup(t *testing.T) {
	e := newTestEnv(t)
	// 两个角色指向带相同权限串的不同菜单
	menus := []model.Menu{
		{ID: 1, Name: "a", Type: model.MenuTypeMenu, Perms: strPtr("blog:article:list")},
		{ID: 2, Name: "b", Type: model.MenuTypeMenu, Perms: strPtr("blog:article:list,blog:article:save")},
	}
	require.NoError(t, e.db.Create(&menus).Error)
	require.NoError(t, e.db.Create(&[]model.Role{{ID: 1, RoleLabel: "r1"}, {ID: 2, RoleLabel: "r2"}}).Error)
	require.NoError(t, e.db.Create(&[]model.UserRole{{UserID: 5, RoleID: 1}, {UserID: 5, RoleID: 2}}).Error)
	require.NoError(t, e.db.Create(&[]model.RoleMenu{
		{RoleID: 1, MenuID: 1}, {RoleID: 2, MenuID: 1}, {RoleID: 2, MenuID: 2},
	}).Error)

	perms, err := e.permService().GetUserPermissions(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog:article:list", "blog:article:save"}, perms)
}

func TestPermListParsing(t *testing.T) {
	m := model.Menu{Perms: strPtr(" a:b , ,c:d,")}
	assert.Equal(t, []string{"a:b", "c:d"}, m.PermList())

	assert.Nil(t, (&model.Menu{}).PermList())
	assert.Nil(t, (&model.Menu{Perms: strPtr("")}).PermList())
}

func TestHasPermission(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.permService()
	ctx := context.Background()

	ok, err := svc.HasPermission(ctx, 10, "system:user:delete")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(ctx, 10, "system:menu:delete")
	require.NoError(t, err)
	assert.False(t, ok)

	// 超级管理员恒为真
	ok, err = svc.HasPermission(ctx, SuperAdminUID, "anything:at:all")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidateAfterRoleMenuChange(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.permService()
	ctx := context.Background()

	perms, err := svc.GetUserPermissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, perms, 4)

	// 移除按钮菜单绑定并失效缓存，权限应随之消失
	require.NoError(t, e.db.Where("role_id = ? AND menu_id = ?", 100, 3).Delete(&model.RoleMenu{}).Error)
	require.NoError(t, svc.InvalidateByRole(ctx, 100))

	perms, err = svc.GetUserPermissions(ctx, 10)
	require.NoError(t, err)
	assert.NotContains(t, perms, "system:user:delete")
	assert.Len(t, perms, 3)
}
