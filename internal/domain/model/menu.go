package model

import "strings"

// 菜单类型：M 目录 / C 菜单页 / F 按钮权限
// F 类型不进入导航树，但其 perms 参与权限集合计算
const (
	MenuTypeDir    = "M"
	MenuTypeMenu   = "C"
	MenuTypeButton = "F"
)

// Menu 导航/权限节点
// parent_id = 0 表示根节点；perms 可为空（纯导航节点），
// 非空时按逗号分隔存放一个或多个权限串

type Menu struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"size:50" json:"name"`
	Path      string  `gorm:"size:128" json:"path"`
	Component string  `gorm:"size:255" json:"component"`
	Icon      string  `gorm:"size:50" json:"icon"`
	ParentID  int64   `gorm:"column:parent_id;index" json:"parent_id"`
	OrderNum  int     `gorm:"column:order_num" json:"order_num"`
	Hidden    int8    `gorm:"column:hidden" json:"hidden"`
	Type      string  `gorm:"column:type;size:1" json:"type"`
	Perms     *string `gorm:"column:perms;size:255" json:"perms,omitempty"`
}

func (Menu) TableName() string { return "blog_menu" }

// PermList 拆分 perms 字段；空值返回 nil
func (m *Menu) PermList() []string {
	if m.Perms == nil || *m.Perms == "" {
		return nil
	}
	parts := strings.Split(*m.Perms, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
