package dao

import (
	"context"
	"fmt"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

// CategoryDAO 分类
type CategoryDAO struct{ DB *gorm.DB }

func NewCategoryDAO(db *gorm.DB) *CategoryDAO { return &CategoryDAO{DB: db} }

func (d *CategoryDAO) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := d.DB.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (d *CategoryDAO) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := d.DB.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find category name=%s: %w", name, err)
	}
	return &c, nil
}

func (d *CategoryDAO) Save(ctx context.Context, c *model.Category) error {
	if err := d.DB.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// CountArticles 分类下的文章数，删除前校验
func (d *CategoryDAO) CountArticles(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.Article{}).
		Where("category_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count category articles id=%d: %w", id, err)
	}
	return n, nil
}

func (d *CategoryDAO) Delete(ctx context.Context, id int64) error {
	if err := d.DB.WithContext(ctx).Delete(&model.Category{}, id).Error; err != nil {
		return fmt.Errorf("delete category id=%d: %w", id, err)
	}
	return nil
}

// TagDAO 标签
type TagDAO struct{ DB *gorm.DB }

func NewTagDAO(db *gorm.DB) *TagDAO { return &TagDAO{DB: db} }

func (d *TagDAO) List(ctx context.Context) ([]model.Tag, error) {
	var list []model.Tag
	if err := d.DB.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return list, nil
}

func (d *TagDAO) ListByIDs(ctx context.Context, ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}
	var list []model.Tag
	if err := d.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list tags by ids: %w", err)
	}
	return list, nil
}

func (d *TagDAO) Save(ctx context.Context, t *model.Tag) error {
	if err := d.DB.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (d *TagDAO) CountArticles(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.ArticleTag{}).
		Where("tag_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tag articles id=%d: %w", id, err)
	}
	return n, nil
}

func (d *TagDAO) Delete(ctx context.Context, id int64) error {
	if err := d.DB.WithContext(ctx).Delete(&model.Tag{}, id).Error; err != nil {
		return fmt.Errorf("delete tag id=%d: %w", id, err)
	}
	return nil
}
