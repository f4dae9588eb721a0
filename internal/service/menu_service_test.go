package service

import (
	"context"
	"testing"

	"go-blogadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserMenuTreeFiltersButtons(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.menuService()

	routes, err := svc.GetUserMenuTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	// 按钮（用户删除）不出现在路由树
	require.Len(t, routes[0].Children, 2)
	assert.Equal(t, "用户管理", routes[0].Children[0].Name)
	assert.Nil(t, routes[0].Children[0].Children)
}

func TestGetUserMenuTreeAugmentation(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.menuService()

	routes, err := svc.GetUserMenuTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	dir := routes[0]
	assert.Equal(t, "/system", dir.Path)
	assert.Equal(t, "Layout", dir.Component)
	assert.True(t, dir.AlwaysShow)
	assert.Equal(t, "noRedirect", dir.Redirect)

	leaf := dir.Children[0]
	assert.Equal(t, "user", leaf.Path)
	assert.Equal(t, "system/user/index", leaf.Component)
	assert.False(t, leaf.AlwaysShow)
	assert.Empty(t, leaf.Redirect)
	assert.Equal(t, "用户管理", leaf.Meta.Title)
}

func TestGetUserMenuTreeHiddenGoesToMeta(t *testing.T) {
	e := newTestEnv(t)
	menus := []model.Menu{
		{ID: 1, Name: "工具", Path: "tool", ParentID: 0, Type: model.MenuTypeDir},
		{ID: 2, Name: "隐藏页", Path: "secret", Component: "tool/secret", ParentID: 1, Hidden: 1, Type: model.MenuTypeMenu},
	}
	require.NoError(t, e.db.Create(&menus).Error)
	require.NoError(t, e.db.Create(&model.Role{ID: 1, RoleLabel: "r"}).Error)
	require.NoError(t, e.db.Create(&model.UserRole{UserID: 7, RoleID: 1}).Error)
	require.NoError(t, e.db.Create(&[]model.RoleMenu{{RoleID: 1, MenuID: 1}, {RoleID: 1, MenuID: 2}}).Error)

	routes, err := e.menuService().GetUserMenuTree(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Children, 1)
	// 隐藏只进 meta，节点仍在树中
	assert.True(t, routes[0].Children[0].Meta.Hidden)
}

func TestGetUserMenuTreeNoRoles(t *testing.T) {
	e := newTestEnv(t)
	routes, err := e.menuService().GetUserMenuTree(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, routes)
	assert.Len(t, routes, 0)
}

func TestGetUserMenuTreeSuperAdmin(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	// 超级管理员无需任何绑定即可见全部目录与页面
	routes, err := e.menuService().GetUserMenuTree(context.Background(), SuperAdminUID)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Len(t, routes[0].Children, 2)
}

func TestMenuDeleteRejectedWithChildren(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.menuService()
	ctx := context.Background()

	err := svc.Delete(ctx, 1)
	require.ErrorIs(t, err, ErrMenuHasChildren)

	// 叶子可删，且角色绑定一并清理
	require.NoError(t, svc.Delete(ctx, 3))
	var n int64
	require.NoError(t, e.db.Model(&model.RoleMenu{}).Where("menu_id = ?", 3).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListMenuTreeIncludesButtons(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	tree, err := e.menuService().ListMenuTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	// 管理端树包含按钮节点
	user := tree[0].Children[0]
	require.Len(t, user.Children, 1)
	assert.Equal(t, model.MenuTypeButton, user.Children[0].Type)
}
