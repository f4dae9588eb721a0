package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/pkg/cache"
	"go-blogadmin/internal/repository/dao"
	rds "go-blogadmin/internal/repository/redis"
)

const (
	siteConfigCacheKey = "site:config"
	siteConfigTTL      = 30 * time.Minute
)

// FriendLinkService 友链管理
type FriendLinkService struct {
	LinkDAO *dao.FriendLinkDAO
}

func NewFriendLinkService(d *dao.FriendLinkDAO) *FriendLinkService {
	return &FriendLinkService{LinkDAO: d}
}

func (s *FriendLinkService) List(ctx context.Context) ([]model.FriendLink, error) {
	return s.LinkDAO.List(ctx)
}

func (s *FriendLinkService) Save(ctx context.Context, l *model.FriendLink) error {
	if l.ID == 0 {
		l.CreateTime = time.Now().Unix()
	}
	return s.LinkDAO.Save(ctx, l)
}

func (s *FriendLinkService) Delete(ctx context.Context, id int64) error {
	return s.LinkDAO.Delete(ctx, id)
}

// SiteConfigService 站点配置，JSON 整读整写，前台读多写少走缓存
type SiteConfigService struct {
	ConfigDAO *dao.SiteConfigDAO
	Cache     cache.Cache
}

func NewSiteConfigService(d *dao.SiteConfigDAO, c cache.Cache) *SiteConfigService {
	return &SiteConfigService{ConfigDAO: d, Cache: c}
}

// Get 返回配置 JSON 串，未初始化时为 "{}"
func (s *SiteConfigService) Get(ctx context.Context) (string, error) {
	if v, err := s.Cache.Get(ctx, siteConfigCacheKey); err == nil && v != "" {
		if cache.IsNilSentinel(v) {
			return "{}", nil
		}
		return v, nil
	}
	c, err := s.ConfigDAO.Get(ctx)
	if err != nil {
		return "", err
	}
	if c == nil {
		_ = s.Cache.SetEX(ctx, siteConfigCacheKey, cache.WrapNil(true), cache.JitterTTL(siteConfigTTL))
		return "{}", nil
	}
	_ = s.Cache.SetEX(ctx, siteConfigCacheKey, c.Config, cache.JitterTTL(siteConfigTTL))
	return c.Config, nil
}

// Update 校验 JSON 合法后落库并失效缓存
func (s *SiteConfigService) Update(ctx context.Context, configJSON string) error {
	if !json.Valid([]byte(configJSON)) {
		return fmt.Errorf("site config: invalid json")
	}
	if err := s.ConfigDAO.Upsert(ctx, configJSON); err != nil {
		return err
	}
	return s.Cache.Del(ctx, siteConfigCacheKey)
}

// StatsService 站点统计看板
type StatsService struct {
	Redis      *rds.Client
	ArticleDAO *dao.ArticleDAO
	CommentDAO *dao.CommentDAO
	UserDAO    *dao.UserDAO
}

func NewStatsService(r *rds.Client, a *dao.ArticleDAO, c *dao.CommentDAO, u *dao.UserDAO) *StatsService {
	return &StatsService{Redis: r, ArticleDAO: a, CommentDAO: c, UserDAO: u}
}

// Overview 首页概览数字
type Overview struct {
	ArticleCount int64 `json:"article_count"`
	CommentCount int64 `json:"comment_count"`
	UserCount    int64 `json:"user_count"`
	TodayUV      int64 `json:"today_uv"`
	OnlineCount  int64 `json:"online_count"`
}

func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	o := &Overview{}
	if err := s.ArticleDAO.DB.WithContext(ctx).Model(&model.Article{}).
		Where("is_delete = 0").Count(&o.ArticleCount).Error; err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	if err := s.CommentDAO.DB.WithContext(ctx).Model(&model.Comment{}).
		Count(&o.CommentCount).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if err := s.UserDAO.DB.WithContext(ctx).Model(&model.User{}).
		Count(&o.UserCount).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	o.TodayUV = s.Redis.UniqueVisitors(ctx, time.Now())
	o.OnlineCount = s.Redis.OnlineCount(ctx)
	return o, nil
}
