package service

import (
	"testing"

	"go-blogadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMenuTreeEmpty(t *testing.T) {
	roots := BuildMenuTree(nil, nil)
	require.NotNil(t, roots)
	assert.Len(t, roots, 0)
}

func TestBuildMenuTreeBasic(t *testing.T) {
	list := []model.Menu{
		{ID: 1, Name: "系统管理", ParentID: 0, Type: model.MenuTypeDir},
		{ID: 2, Name: "用户管理", ParentID: 1, Type: model.MenuTypeMenu},
		{ID: 3, Name: "角色管理", ParentID: 1, Type: model.MenuTypeMenu},
		{ID: 4, Name: "删除按钮", ParentID: 2, Type: model.MenuTypeButton},
	}
	roots := BuildMenuTree(list, nil)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "用户管理", roots[0].Children[0].Name)
	assert.Equal(t, "角色管理", roots[0].Children[1].Name)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, model.MenuTypeButton, roots[0].Children[0].Children[0].Type)
}

func TestBuildMenuTreeSiblingOrderFollowsInput(t *testing.T) {
	// 入参已按 order_num 排序，树中兄弟顺序必须保持
	list := []model.Menu{
		{ID: 1, Name: "root", ParentID: 0, Type: model.MenuTypeDir},
		{ID: 3, Name: "b", ParentID: 1, OrderNum: 1, Type: model.MenuTypeMenu},
		{ID: 2, Name: "a", ParentID: 1, OrderNum: 2, Type: model.MenuTypeMenu},
	}
	roots := BuildMenuTree(list, nil)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "b", roots[0].Children[0].Name)
	assert.Equal(t, "a", roots[0].Children[1].Name)
}

func TestBuildMenuTreeDropsOrphans(t *testing.T) {
	list := []model.Menu{
		{ID: 1, Name: "root", ParentID: 0, Type: model.MenuTypeDir},
		{ID: 2, Name: "child", ParentID: 1, Type: model.MenuTypeMenu},
		{ID: 9, Name: "dangling", ParentID: 404, Type: model.MenuTypeMenu},
	}
	var dropped []int64
	roots := BuildMenuTree(list, func(m model.Menu) { dropped = append(dropped, m.ID) })
	require.Len(t, roots, 1)
	assert.Equal(t, []int64{9}, dropped)
	assert.Len(t, FlattenMenuTree(roots), 2)
}

func TestFlattenMenuTreeRoundTrip(t *testing.T) {
	list := []model.Menu{
		{ID: 1, Name: "sys", ParentID: 0, Type: model.MenuTypeDir},
		{ID: 2, Name: "user", ParentID: 1, Type: model.MenuTypeMenu},
		{ID: 3, Name: "btn", ParentID: 2, Type: model.MenuTypeButton},
		{ID: 4, Name: "blog", ParentID: 0, Type: model.MenuTypeDir},
	}
	flat := FlattenMenuTree(BuildMenuTree(list, nil))
	require.Len(t, flat, 4)
	// 先序遍历：sys 子树先于 blog
	assert.Equal(t, int64(1), flat[0].ID)
	assert.Equal(t, int64(2), flat[1].ID)
	assert.Equal(t, int64(3), flat[2].ID)
	assert.Equal(t, int64(4), flat[3].ID)
}
