package dao

import (
	"context"
	"fmt"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

type CommentDAO struct{ DB *gorm.DB }

func NewCommentDAO(db *gorm.DB) *CommentDAO { return &CommentDAO{DB: db} }

// ListByArticle 某文章下已审核评论，一级在前按时间升序
func (d *CommentDAO) ListByArticle(ctx context.Context, articleID int64, page, size int) ([]model.Comment, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("article_id = ? AND is_review = 1", articleID)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments article=%d: %w", articleID, err)
	}
	var list []model.Comment
	if err := db.Order("reply_id, create_time").
		Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list comments article=%d: %w", articleID, err)
	}
	return list, total, nil
}

// ListAdmin 后台评论列表，可按审核状态过滤（-1 不过滤）
func (d *CommentDAO) ListAdmin(ctx context.Context, isReview int8, page, size int) ([]model.Comment, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Comment{})
	if isReview >= 0 {
		db = db.Where("is_review = ?", isReview)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}
	var list []model.Comment
	if err := db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return list, total, nil
}

func (d *CommentDAO) Create(ctx context.Context, c *model.Comment) error {
	if err := d.DB.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (d *CommentDAO) UpdateReview(ctx context.Context, ids []int64, isReview int8) error {
	if len(ids) == 0 {
		return nil
	}
	if err := d.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id IN ?", ids).Update("is_review", isReview).Error; err != nil {
		return fmt.Errorf("update comment review: %w", err)
	}
	return nil
}

// Delete 删除评论及其回复
func (d *CommentDAO) Delete(ctx context.Context, id int64) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Comment{}, id).Error; err != nil {
			return err
		}
		return tx.Where("reply_id = ?", id).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete comment id=%d: %w", id, err)
	}
	return nil
}

// MessageDAO 留言板
type MessageDAO struct{ DB *gorm.DB }

func NewMessageDAO(db *gorm.DB) *MessageDAO { return &MessageDAO{DB: db} }

func (d *MessageDAO) List(ctx context.Context, reviewedOnly bool) ([]model.Message, error) {
	db := d.DB.WithContext(ctx).Model(&model.Message{})
	if reviewedOnly {
		db = db.Where("is_review = 1")
	}
	var list []model.Message
	if err := db.Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return list, nil
}

func (d *MessageDAO) Create(ctx context.Context, m *model.Message) error {
	if err := d.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (d *MessageDAO) UpdateReview(ctx context.Context, ids []int64, isReview int8) error {
	if len(ids) == 0 {
		return nil
	}
	if err := d.DB.WithContext(ctx).Model(&model.Message{}).
		Where("id IN ?", ids).Update("is_review", isReview).Error; err != nil {
		return fmt.Errorf("update message review: %w", err)
	}
	return nil
}

func (d *MessageDAO) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := d.DB.WithContext(ctx).Delete(&model.Message{}, ids).Error; err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

// TalkDAO 说说
type TalkDAO struct{ DB *gorm.DB }

func NewTalkDAO(db *gorm.DB) *TalkDAO { return &TalkDAO{DB: db} }

func (d *TalkDAO) List(ctx context.Context, publicOnly bool, page, size int) ([]model.Talk, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Talk{})
	if publicOnly {
		db = db.Where("status = 1")
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count talks: %w", err)
	}
	var list []model.Talk
	if err := db.Order("is_top DESC, id DESC").
		Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list talks: %w", err)
	}
	return list, total, nil
}

func (d *TalkDAO) FindByID(ctx context.Context, id int64) (*model.Talk, error) {
	var t model.Talk
	if err := d.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find talk id=%d: %w", id, err)
	}
	return &t, nil
}

func (d *TalkDAO) Save(ctx context.Context, t *model.Talk) error {
	if err := d.DB.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save talk: %w", err)
	}
	return nil
}

func (d *TalkDAO) Delete(ctx context.Context, id int64) error {
	if err := d.DB.WithContext(ctx).Delete(&model.Talk{}, id).Error; err != nil {
		return fmt.Errorf("delete talk id=%d: %w", id, err)
	}
	return nil
}
