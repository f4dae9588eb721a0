package service

import (
	"context"
	"testing"

	"go-blogadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignUserRolesReplacesAll(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.db.Create(&[]model.Role{
		{ID: 1, RoleLabel: "a"}, {ID: 2, RoleLabel: "b"}, {ID: 3, RoleLabel: "c"},
	}).Error)
	svc := e.roleService()
	ctx := context.Background()

	require.NoError(t, svc.AssignUserRoles(ctx, 10, []int64{1, 2}))
	ids, err := e.roleDAO.ListRoleIDsByUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	// 再次分配整体替换而非追加
	require.NoError(t, svc.AssignUserRoles(ctx, 10, []int64{3}))
	ids, err = e.roleDAO.ListRoleIDsByUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)

	// 空集合清空绑定
	require.NoError(t, svc.AssignUserRoles(ctx, 10, nil))
	ids, err = e.roleDAO.ListRoleIDsByUser(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, ids, 0)
}

func TestAssignRoleMenusReplacesAll(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	svc := e.roleService()
	ctx := context.Background()

	require.NoError(t, svc.AssignRoleMenus(ctx, 100, []int64{1, 2}))
	ids, err := svc.ListRoleMenuIDs(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestRoleLabelUniqueness(t *testing.T) {
	e := newTestEnv(t)
	svc := e.roleService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Role{RoleName: "管理员", RoleLabel: "admin"}))
	err := svc.Create(ctx, &model.Role{RoleName: "另一个", RoleLabel: "admin"})
	assert.ErrorIs(t, err, ErrRoleLabelExists)
}

func TestRoleDeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	seedRBAC(t, e)
	ctx := context.Background()

	require.NoError(t, e.roleService().Delete(ctx, 100))

	var userRoles, roleMenus int64
	require.NoError(t, e.db.Model(&model.UserRole{}).Where("role_id = ?", 100).Count(&userRoles).Error)
	require.NoError(t, e.db.Model(&model.RoleMenu{}).Where("role_id = ?", 100).Count(&roleMenus).Error)
	assert.Zero(t, userRoles)
	assert.Zero(t, roleMenus)

	// 用户随后解析不到任何权限
	perms, err := e.permService().GetUserPermissions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, perms, 0)
}
