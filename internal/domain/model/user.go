package model

// User 对应 blog_user 表
// status: 1 正常 0 禁用；密码仅存 bcrypt 哈希，不对外输出

type User struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string `gorm:"size:64;uniqueIndex:uk_username" json:"username"`
	Password   string `gorm:"size:64" json:"-"`
	Nickname   string `gorm:"size:64" json:"nickname"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	Email      string `gorm:"size:128" json:"email"`
	Intro      string `gorm:"size:255" json:"intro"`
	Status     int8   `gorm:"column:status;default:1" json:"status"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
	LoginIP    string `gorm:"column:login_ip;size:45" json:"login_ip"`
	LoginTime  int64  `gorm:"column:login_time" json:"login_time"`
}

func (User) TableName() string { return "blog_user" }
