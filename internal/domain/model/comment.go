package model

// Comment 文章评论
// reply_id = 0 表示一级评论；is_review: 1 已审核 0 待审核

type Comment struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID  int64  `gorm:"column:article_id;index" json:"article_id"`
	UserID     int64  `gorm:"column:user_id" json:"user_id"`
	ReplyID    int64  `gorm:"column:reply_id" json:"reply_id"`
	Nickname   string `gorm:"size:64" json:"nickname"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	Content    string `gorm:"size:1024" json:"content"`
	IsReview   int8   `gorm:"column:is_review;index" json:"is_review"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
}

func (Comment) TableName() string { return "blog_comment" }

// Message 留言板留言
type Message struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname   string `gorm:"size:64" json:"nickname"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	Content    string `gorm:"size:512" json:"content"`
	IP         string `gorm:"column:ip;size:45" json:"ip"`
	IsReview   int8   `gorm:"column:is_review;index" json:"is_review"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
}

func (Message) TableName() string { return "blog_message" }

// Talk 说说（短动态）
type Talk struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id" json:"user_id"`
	Content    string `gorm:"size:1024" json:"content"`
	Images     string `gorm:"size:1024" json:"images"`
	IsTop      int8   `gorm:"column:is_top" json:"is_top"`
	Status     int8   `gorm:"column:status;default:1" json:"status"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
}

func (Talk) TableName() string { return "blog_talk" }
