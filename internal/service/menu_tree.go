package service

import "go-blogadmin/internal/domain/model"

// MenuNode 菜单树节点
type MenuNode struct {
	model.Menu
	Children []*MenuNode `json:"children,omitempty"`
}

// BuildMenuTree 两遍扫描把平铺菜单组装成森林。
// 输入序（parent_id、order_num）决定兄弟节点顺序；父节点不在
// 输入集合中的记录视为孤儿被丢弃，逐条回调 onOrphan。
func BuildMenuTree(list []model.Menu, onOrphan func(model.Menu)) []*MenuNode {
	if len(list) == 0 {
		return []*MenuNode{}
	}
	nodes := make(map[int64]*MenuNode, len(list))
	for i := range list {
		nodes[list[i].ID] = &MenuNode{Menu: list[i]}
	}
	roots := make([]*MenuNode, 0)
	for i := range list {
		n := nodes[list[i].ID]
		if n.ParentID == 0 {
			roots = append(roots, n)
			continue
		}
		p, ok := nodes[n.ParentID]
		if !ok {
			if onOrphan != nil {
				onOrphan(list[i])
			}
			continue
		}
		p.Children = append(p.Children, n)
	}
	return roots
}

// FlattenMenuTree 先序遍历展开，BuildMenuTree 的逆操作
func FlattenMenuTree(roots []*MenuNode) []model.Menu {
	out := make([]model.Menu, 0)
	var walk func(ns []*MenuNode)
	walk = func(ns []*MenuNode) {
		for _, n := range ns {
			out = append(out, n.Menu)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}
