package service

import (
	"context"
	"errors"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"
	rds "go-blogadmin/internal/repository/redis"
	"go-blogadmin/internal/search"

	"go.uber.org/zap"
)

// ErrArticleNotFound 文章不存在或不可见
var ErrArticleNotFound = errors.New("article not found")

// ArticleService 文章管理与前台展示。
// 浏览量计数在 Redis，ES 可用时检索走 ES、否则降级 LIKE。
type ArticleService struct {
	ArticleDAO *dao.ArticleDAO
	TagDAO     *dao.TagDAO
	Redis      *rds.Client
	Indexer    *search.ArticleIndexer
	Log        *logging.Logger
}

func NewArticleService(articleDAO *dao.ArticleDAO, tagDAO *dao.TagDAO, r *rds.Client, idx *search.ArticleIndexer, log *logging.Logger) *ArticleService {
	return &ArticleService{ArticleDAO: articleDAO, TagDAO: tagDAO, Redis: r, Indexer: idx, Log: log}
}

// ArticleDetail 详情视图
type ArticleDetail struct {
	model.Article
	Tags  []model.Tag `json:"tags"`
	Views int64       `json:"views"`
}

func (s *ArticleService) ListAdmin(ctx context.Context, q dao.ArticleQuery) ([]model.Article, int64, error) {
	return s.ArticleDAO.List(ctx, q)
}

// ListPublic 前台文章列表，仅公开且未删除
func (s *ArticleService) ListPublic(ctx context.Context, categoryID, tagID int64, page, size int) ([]model.Article, int64, error) {
	return s.ArticleDAO.List(ctx, dao.ArticleQuery{
		CategoryID: categoryID,
		TagID:      tagID,
		Status:     model.ArticleStatusPublic,
		Page:       page,
		Size:       size,
	})
}

// Detail 文章详情。admin 为 false 时私密/草稿/回收站视为不存在，
// 且浏览量加一。
func (s *ArticleService) Detail(ctx context.Context, id int64, admin bool) (*ArticleDetail, error) {
	a, err := s.ArticleDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	if !admin && (a.IsDelete == 1 || a.Status != model.ArticleStatusPublic) {
		return nil, ErrArticleNotFound
	}
	tagIDs, err := s.ArticleDAO.ListTagIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.TagDAO.ListByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	var views int64
	if admin {
		views = s.Redis.ArticleViews(ctx, id)
	} else {
		views = s.Redis.IncrArticleViews(ctx, id)
	}
	return &ArticleDetail{Article: *a, Tags: tags, Views: views}, nil
}

// Save 新建或更新文章，标签整体替换，同步写 ES
func (s *ArticleService) Save(ctx context.Context, a *model.Article, tagIDs []int64) error {
	now := time.Now().Unix()
	if a.ID == 0 {
		a.CreateTime = now
	}
	a.UpdateTime = now
	if err := s.ArticleDAO.SaveWithTags(ctx, a, tagIDs); err != nil {
		return err
	}
	if err := s.Indexer.Index(ctx, a); err != nil {
		// 检索落后可接受，不阻塞保存
		s.Log.WithContext(ctx).Warn("article_index_failed", zap.Int64("article_id", a.ID), zap.Error(err))
	}
	s.Log.WithContext(ctx).Info("article_saved", zap.Int64("article_id", a.ID), zap.String("title", a.Title))
	return nil
}

// SetDelete 移入/移出回收站
func (s *ArticleService) SetDelete(ctx context.Context, id int64, isDelete int8) error {
	if err := s.ArticleDAO.UpdateSoftDelete(ctx, id, isDelete); err != nil {
		return err
	}
	if isDelete == 1 {
		if err := s.Indexer.Remove(ctx, id); err != nil {
			s.Log.WithContext(ctx).Warn("article_deindex_failed", zap.Int64("article_id", id), zap.Error(err))
		}
	} else if a, err := s.ArticleDAO.FindByID(ctx, id); err == nil && a != nil {
		if err := s.Indexer.Index(ctx, a); err != nil {
			s.Log.WithContext(ctx).Warn("article_index_failed", zap.Int64("article_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *ArticleService) SetTop(ctx context.Context, id int64, isTop int8) error {
	return s.ArticleDAO.UpdateTop(ctx, id, isTop)
}

// Delete 物理删除，仅允许回收站中的文章
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	a, err := s.ArticleDAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrArticleNotFound
	}
	if a.IsDelete != 1 {
		return errors.New("article not in recycle bin")
	}
	if err := s.ArticleDAO.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Indexer.Remove(ctx, id); err != nil {
		s.Log.WithContext(ctx).Warn("article_deindex_failed", zap.Int64("article_id", id), zap.Error(err))
	}
	return nil
}

func (s *ArticleService) Archives(ctx context.Context, page, size int) ([]model.Article, int64, error) {
	return s.ArticleDAO.ListArchives(ctx, page, size)
}

// Search 全文检索。ES 启用走 ES 并按命中序返回；否则 LIKE 降级
func (s *ArticleService) Search(ctx context.Context, keyword string, limit int) ([]model.Article, error) {
	if keyword == "" {
		return []model.Article{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if s.Indexer.Enabled() {
		ids, err := s.Indexer.Search(ctx, keyword, limit)
		if err != nil {
			s.Log.WithContext(ctx).Warn("es_search_failed_fallback", zap.Error(err))
			return s.ArticleDAO.SearchLike(ctx, keyword, limit)
		}
		if len(ids) == 0 {
			return []model.Article{}, nil
		}
		articles, err := s.ArticleDAO.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]model.Article, len(articles))
		for _, a := range articles {
			byID[a.ID] = a
		}
		out := make([]model.Article, 0, len(ids))
		for _, id := range ids {
			if a, ok := byID[id]; ok {
				out = append(out, a)
			}
		}
		return out, nil
	}
	return s.ArticleDAO.SearchLike(ctx, keyword, limit)
}
