package service

import (
	"context"
	"errors"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"
	"go-blogadmin/pkg/crypto"

	"go.uber.org/zap"
)

var (
	// ErrUsernameExists 用户名已存在
	ErrUsernameExists = errors.New("username already exists")
	// ErrProtectedUser 超级管理员禁止停用或删除
	ErrProtectedUser = errors.New("protected user")
)

// UserService 后台用户管理
type UserService struct {
	UserDAO *dao.UserDAO
	RoleDAO *dao.RoleDAO
	Perm    *PermissionService
	Log     *logging.Logger
}

func NewUserService(userDAO *dao.UserDAO, roleDAO *dao.RoleDAO, perm *PermissionService, log *logging.Logger) *UserService {
	return &UserService{UserDAO: userDAO, RoleDAO: roleDAO, Perm: perm, Log: log}
}

// UserItem 列表项，附带角色 ID 供编辑回显
type UserItem struct {
	model.User
	RoleIDs []int64 `json:"role_ids"`
}

func (s *UserService) List(ctx context.Context, keyword string, page, size int) ([]UserItem, int64, error) {
	users, total, err := s.UserDAO.List(ctx, keyword, page, size)
	if err != nil {
		return nil, 0, err
	}
	uids := make([]int64, 0, len(users))
	for _, u := range users {
		uids = append(uids, u.ID)
	}
	roleMap, err := s.RoleDAO.ListRoleIDsByUsers(ctx, uids)
	if err != nil {
		return nil, 0, err
	}
	items := make([]UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserItem{User: u, RoleIDs: roleMap[u.ID]})
	}
	return items, total, nil
}

func (s *UserService) Create(ctx context.Context, u *model.User, plainPassword string) error {
	exist, err := s.UserDAO.FindByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrUsernameExists
	}
	u.Password = crypto.HashPassword(plainPassword)
	u.Status = 1
	now := time.Now().Unix()
	u.CreateTime, u.UpdateTime = now, now
	if err := s.UserDAO.Create(ctx, u); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("user_created", zap.Int64("uid", u.ID), zap.String("username", u.Username))
	return nil
}

func (s *UserService) Update(ctx context.Context, u *model.User) error {
	u.Password = "" // 密码走独立接口
	u.UpdateTime = time.Now().Unix()
	return s.UserDAO.Update(ctx, u)
}

func (s *UserService) ResetPassword(ctx context.Context, uid int64, plainPassword string) error {
	return s.UserDAO.UpdatePassword(ctx, uid, crypto.HashPassword(plainPassword))
}

func (s *UserService) SetStatus(ctx context.Context, uid int64, status int8) error {
	if uid == SuperAdminUID {
		return ErrProtectedUser
	}
	return s.UserDAO.UpdateStatus(ctx, uid, status)
}

func (s *UserService) Delete(ctx context.Context, uid int64) error {
	if uid == SuperAdminUID {
		return ErrProtectedUser
	}
	if err := s.UserDAO.Delete(ctx, uid); err != nil {
		return err
	}
	s.Perm.Invalidate(ctx, uid)
	s.Log.WithContext(ctx).Info("user_deleted", zap.Int64("uid", uid))
	return nil
}
