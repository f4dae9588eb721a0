package dao

import (
	"context"
	"fmt"
	"time"

	"go-blogadmin/internal/domain/model"

	"gorm.io/gorm"
)

type UserDAO struct{ DB *gorm.DB }

func NewUserDAO(db *gorm.DB) *UserDAO { return &UserDAO{DB: db} }

func (d *UserDAO) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find user id=%d: %w", id, err)
	}
	return &u, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find user username=%s: %w", username, err)
	}
	return &u, nil
}

// List 关键字匹配用户名/昵称，分页返回
func (d *UserDAO) List(ctx context.Context, keyword string, page, size int) ([]model.User, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("username LIKE ? OR nickname LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var list []model.User
	if err := q.Order("id").Offset((page - 1) * size).Limit(size).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return list, total, nil
}

func (d *UserDAO) Create(ctx context.Context, u *model.User) error {
	if err := d.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (d *UserDAO) Update(ctx context.Context, u *model.User) error {
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Updates(u).Error; err != nil {
		return fmt.Errorf("update user id=%d: %w", u.ID, err)
	}
	return nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password", hash).Error; err != nil {
		return fmt.Errorf("update user password id=%d: %w", id, err)
	}
	return nil
}

func (d *UserDAO) UpdateStatus(ctx context.Context, id int64, status int8) error {
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("update user status id=%d: %w", id, err)
	}
	return nil
}

func (d *UserDAO) RecordLogin(ctx context.Context, id int64, ip string) error {
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"login_ip": ip, "login_time": time.Now().Unix()}).Error; err != nil {
		return fmt.Errorf("record login id=%d: %w", id, err)
	}
	return nil
}

// Delete 删除用户并清理其角色关系
func (d *UserDAO) Delete(ctx context.Context, id int64) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete user id=%d: %w", id, err)
	}
	return nil
}
