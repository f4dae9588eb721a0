package model

// FriendLink 友链

type FriendLink struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:64" json:"name"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	URL        string `gorm:"column:url;size:255" json:"url"`
	Intro      string `gorm:"size:255" json:"intro"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
}

func (FriendLink) TableName() string { return "blog_friend_link" }

// SiteConfig 站点配置，单行记录，config 为 JSON 串整体读写
type SiteConfig struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Config     string `gorm:"type:text" json:"config"`
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
}

func (SiteConfig) TableName() string { return "blog_site_config" }
