package service

import (
	"testing"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/pkg/cache"
	"go-blogadmin/internal/repository/dao"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv 内存库 + 进程内缓存的服务测试环境
type testEnv struct {
	db      *gorm.DB
	cache   *cache.SimpleCache
	log     *logging.Logger
	userDAO *dao.UserDAO
	roleDAO *dao.RoleDAO
	menuDAO *dao.MenuDAO
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Role{}, &model.UserRole{},
		&model.Menu{}, &model.RoleMenu{},
	))
	return &testEnv{
		db:      db,
		cache:   cache.New(time.Minute),
		log:     &logging.Logger{Logger: zap.NewNop()},
		userDAO: dao.NewUserDAO(db),
		roleDAO: dao.NewRoleDAO(db),
		menuDAO: dao.NewMenuDAO(db),
	}
}

func (e *testEnv) permService() *PermissionService {
	return NewPermissionService(e.roleDAO, e.menuDAO, e.cache, e.log)
}

func (e *testEnv) menuService() *MenuService {
	return NewMenuService(e.menuDAO, e.roleDAO, e.permService(), e.log)
}

func (e *testEnv) roleService() *RoleService {
	return NewRoleService(e.roleDAO, e.permService(), e.log)
}

func strPtr(s string) *string { return &s }

// seedRBAC 构造一套典型权限数据：
// uid=10 绑定角色 100，角色可见 系统管理/用户管理 及其下按钮
func seedRBAC(t *testing.T, e *testEnv) {
	t.Helper()
	menus := []model.Menu{
		{ID: 1, Name: "系统管理", Path: "system", ParentID: 0, OrderNum: 1, Type: model.MenuTypeDir},
		{ID: 2, Name: "用户管理", Path: "user", Component: "system/user/index", ParentID: 1, OrderNum: 1, Type: model.MenuTypeMenu, Perms: strPtr("system:user:list")},
		{ID: 3, Name: "用户删除", ParentID: 2, OrderNum: 1, Type: model.MenuTypeButton, Perms: strPtr("system:user:delete")},
		{ID: 4, Name: "角色管理", Path: "role", Component: "system/role/index", ParentID: 1, OrderNum: 2, Type: model.MenuTypeMenu, Perms: strPtr("system:role:list, system:role:save")},
	}
	require.NoError(t, e.db.Create(&menus).Error)
	require.NoError(t, e.db.Create(&model.Role{ID: 100, RoleName: "运营", RoleLabel: "ops"}).Error)
	require.NoError(t, e.db.Create(&model.UserRole{UserID: 10, RoleID: 100}).Error)
	rms := []model.RoleMenu{
		{RoleID: 100, MenuID: 1}, {RoleID: 100, MenuID: 2},
		{RoleID: 100, MenuID: 3}, {RoleID: 100, MenuID: 4},
	}
	require.NoError(t, e.db.Create(&rms).Error)
}
