package model

// Category 文章分类

type Category struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:50;uniqueIndex:uk_category_name" json:"name"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
}

func (Category) TableName() string { return "blog_category" }

// Tag 文章标签
type Tag struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:50;uniqueIndex:uk_tag_name" json:"name"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
}

func (Tag) TableName() string { return "blog_tag" }
