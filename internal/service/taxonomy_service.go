package service

import (
	"context"
	"errors"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/repository/dao"
)

var (
	// ErrNameExists 分类/标签名称重复
	ErrNameExists = errors.New("name already exists")
	// ErrInUse 仍被文章引用，拒绝删除
	ErrInUse = errors.New("still referenced by articles")
)

// CategoryService 分类管理
type CategoryService struct {
	CategoryDAO *dao.CategoryDAO
}

func NewCategoryService(d *dao.CategoryDAO) *CategoryService { return &CategoryService{CategoryDAO: d} }

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.CategoryDAO.List(ctx)
}

func (s *CategoryService) Save(ctx context.Context, c *model.Category) error {
	exist, err := s.CategoryDAO.FindByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if exist != nil && exist.ID != c.ID {
		return ErrNameExists
	}
	if c.ID == 0 {
		c.CreateTime = time.Now().Unix()
	}
	return s.CategoryDAO.Save(ctx, c)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	n, err := s.CategoryDAO.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	return s.CategoryDAO.Delete(ctx, id)
}

// TagService 标签管理
type TagService struct {
	TagDAO *dao.TagDAO
}

func NewTagService(d *dao.TagDAO) *TagService { return &TagService{TagDAO: d} }

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.TagDAO.List(ctx)
}

func (s *TagService) Save(ctx context.Context, t *model.Tag) error {
	if t.ID == 0 {
		t.CreateTime = time.Now().Unix()
	}
	return s.TagDAO.Save(ctx, t)
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	n, err := s.TagDAO.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	return s.TagDAO.Delete(ctx, id)
}
