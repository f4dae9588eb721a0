package dao

import (
	"context"
	"fmt"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

type ArticleDAO struct{ DB *gorm.DB }

func NewArticleDAO(db *gorm.DB) *ArticleDAO { return &ArticleDAO{DB: db} }

// ArticleQuery 列表查询条件，零值字段不参与过滤
type ArticleQuery struct {
	Keyword    string
	CategoryID int64
	TagID      int64
	Status     int8
	IsDelete   int8
	Page       int
	Size       int
}

func (d *ArticleDAO) List(ctx context.Context, q ArticleQuery) ([]model.Article, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Article{}).Where("is_delete = ?", q.IsDelete)
	if q.Keyword != "" {
		db = db.Where("title LIKE ?", "%"+q.Keyword+"%")
	}
	if q.CategoryID > 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.TagID > 0 {
		db = db.Where("id IN (?)", d.DB.Model(&model.ArticleTag{}).
			Select("article_id").Where("tag_id = ?", q.TagID))
	}
	if q.Status > 0 {
		db = db.Where("status = ?", q.Status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	var list []model.Article
	if err := db.Order("is_top DESC, id DESC").
		Offset((q.Page - 1) * q.Size).Limit(q.Size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return list, total, nil
}

func (d *ArticleDAO) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	if err := d.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find article id=%d: %w", id, err)
	}
	return &a, nil
}

// ListArchives 归档：已发布文章按时间倒序，只取概要字段
func (d *ArticleDAO) ListArchives(ctx context.Context, page, size int) ([]model.Article, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Article{}).
		Where("is_delete = 0 AND status = ?", model.ArticleStatusPublic)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count archives: %w", err)
	}
	var list []model.Article
	if err := db.Select("id", "title", "create_time").Order("create_time DESC").
		Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list archives: %w", err)
	}
	return list, total, nil
}

// SaveWithTags 保存文章并整体替换标签关系
func (d *ArticleDAO) SaveWithTags(ctx context.Context, a *model.Article, tagIDs []int64) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ID == 0 {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&model.Article{}).Where("id = ?", a.ID).
				Select("category_id", "title", "content", "cover", "summary",
					"status", "is_top", "update_time").
				Updates(a).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("article_id = ?", a.ID).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		rows := make([]model.ArticleTag, 0, len(tagIDs))
		for _, tid := range tagIDs {
			rows = append(rows, model.ArticleTag{ArticleID: a.ID, TagID: tid})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save article with tags: %w", err)
	}
	return nil
}

func (d *ArticleDAO) ListTagIDs(ctx context.Context, articleID int64) ([]int64, error) {
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.ArticleTag{}).
		Where("article_id = ?", articleID).Pluck("tag_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list article tag ids id=%d: %w", articleID, err)
	}
	return ids, nil
}

func (d *ArticleDAO) UpdateSoftDelete(ctx context.Context, id int64, isDelete int8) error {
	if err := d.DB.WithContext(ctx).Model(&model.Article{}).Where("id = ?", id).
		Update("is_delete", isDelete).Error; err != nil {
		return fmt.Errorf("update article is_delete id=%d: %w", id, err)
	}
	return nil
}

func (d *ArticleDAO) UpdateTop(ctx context.Context, id int64, isTop int8) error {
	if err := d.DB.WithContext(ctx).Model(&model.Article{}).Where("id = ?", id).
		Update("is_top", isTop).Error; err != nil {
		return fmt.Errorf("update article is_top id=%d: %w", id, err)
	}
	return nil
}

// Delete 物理删除，仅对回收站中的文章调用
func (d *ArticleDAO) Delete(ctx context.Context, id int64) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Article{}, id).Error; err != nil {
			return err
		}
		return tx.Where("article_id = ?", id).Delete(&model.ArticleTag{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete article id=%d: %w", id, err)
	}
	return nil
}

// ListByIDs 按 ID 集合取公开文章，检索命中回表用
func (d *ArticleDAO) ListByIDs(ctx context.Context, ids []int64) ([]model.Article, error) {
	if len(ids) == 0 {
		return []model.Article{}, nil
	}
	var list []model.Article
	if err := d.DB.WithContext(ctx).
		Where("id IN ? AND is_delete = 0 AND status = ?", ids, model.ArticleStatusPublic).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list articles by ids: %w", err)
	}
	return list, nil
}

// SearchLike 标题/内容模糊检索，ES 未启用时的降级路径
func (d *ArticleDAO) SearchLike(ctx context.Context, keyword string, limit int) ([]model.Article, error) {
	like := "%" + keyword + "%"
	var list []model.Article
	if err := d.DB.WithContext(ctx).
		Where("is_delete = 0 AND status = ?", model.ArticleStatusPublic).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return list, nil
}
