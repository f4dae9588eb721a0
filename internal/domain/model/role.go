package model

// Role 角色（权限组）
// role_label 为稳定的机器标识（admin / visitor），唯一

type Role struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName   string `gorm:"column:role_name;size:50" json:"role_name"`
	RoleLabel  string `gorm:"column:role_label;size:50;uniqueIndex:uk_role_label" json:"role_label"`
	Remark     string `gorm:"size:255" json:"remark"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
}

func (Role) TableName() string { return "blog_role" }

// UserRole 用户-角色关系，一行一条；重新分配采用整体替换
type UserRole struct {
	UserID int64 `gorm:"column:user_id;uniqueIndex:uk_user_role,priority:1" json:"user_id"`
	RoleID int64 `gorm:"column:role_id;uniqueIndex:uk_user_role,priority:2" json:"role_id"`
}

func (UserRole) TableName() string { return "blog_user_role" }

// RoleMenu 角色-菜单关系，替换语义同 UserRole
type RoleMenu struct {
	RoleID int64 `gorm:"column:role_id;uniqueIndex:uk_role_menu,priority:1" json:"role_id"`
	MenuID int64 `gorm:"column:menu_id;uniqueIndex:uk_role_menu,priority:2" json:"menu_id"`
}

func (RoleMenu) TableName() string { return "blog_role_menu" }
