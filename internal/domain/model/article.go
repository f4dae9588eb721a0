package model

// 文章状态
const (
	ArticleStatusPublic  int8 = 1
	ArticleStatusPrivate int8 = 2
	ArticleStatusDraft   int8 = 3
)

// Article 文章
// is_delete 为软删除标记（回收站）

type Article struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id;index" json:"user_id"`
	CategoryID int64  `gorm:"column:category_id;index" json:"category_id"`
	Title      string `gorm:"size:128" json:"title"`
	Cover      string `gorm:"size:255" json:"cover"`
	Summary    string `gorm:"size:512" json:"summary"`
	Content    string `gorm:"type:text" json:"content"`
	IsTop      int8   `gorm:"column:is_top" json:"is_top"`
	IsDelete   int8   `gorm:"column:is_delete;index" json:"is_delete"`
	Status     int8   `gorm:"column:status;default:1" json:"status"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
}

func (Article) TableName() string { return "blog_article" }

// ArticleTag 文章-标签关系
type ArticleTag struct {
	ArticleID int64 `gorm:"column:article_id;uniqueIndex:uk_article_tag,priority:1" json:"article_id"`
	TagID     int64 `gorm:"column:tag_id;uniqueIndex:uk_article_tag,priority:2" json:"tag_id"`
}

func (ArticleTag) TableName() string { return "blog_article_tag" }
