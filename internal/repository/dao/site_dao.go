package dao

import (
	"context"
	"fmt"
	"time"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

// FriendLinkDAO 友链
type FriendLinkDAO struct{ DB *gorm.DB }

func NewFriendLinkDAO(db *gorm.DB) *FriendLinkDAO { return &FriendLinkDAO{DB: db} }

func (d *FriendLinkDAO) List(ctx context.Context) ([]model.FriendLink, error) {
	var list []model.FriendLink
	if err := d.DB.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list friend links: %w", err)
	}
	return list, nil
}

func (d *FriendLinkDAO) Save(ctx context.Context, l *model.FriendLink) error {
	if err := d.DB.WithContext(ctx).Save(l).Error; err != nil {
		return fmt.Errorf("save friend link: %w", err)
	}
	return nil
}

func (d *FriendLinkDAO) Delete(ctx context.Context, id int64) error {
	if err := d.DB.WithContext(ctx).Delete(&model.FriendLink{}, id).Error; err != nil {
		return fmt.Errorf("delete friend link id=%d: %w", id, err)
	}
	return nil
}

// SiteConfigDAO 站点配置（单行）
type SiteConfigDAO struct{ DB *gorm.DB }

func NewSiteConfigDAO(db *gorm.DB) *SiteConfigDAO { return &SiteConfigDAO{DB: db} }

const siteConfigID = 1

func (d *SiteConfigDAO) Get(ctx context.Context) (*model.SiteConfig, error) {
	var c model.SiteConfig
	if err := d.DB.WithContext(ctx).First(&c, siteConfigID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get site config: %w", err)
	}
	return &c, nil
}

// Upsert 覆盖写入配置 JSON
func (d *SiteConfigDAO) Upsert(ctx context.Context, configJSON string) error {
	c := model.SiteConfig{ID: siteConfigID, Config: configJSON, UpdateTime: time.Now().Unix()}
	if err := d.DB.WithContext(ctx).Save(&c).Error; err != nil {
		return fmt.Errorf("upsert site config: %w", err)
	}
	return nil
}
