package service

import (
	"context"
	"errors"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"
	rds "go-blogadmin/internal/repository/redis"
	"go-blogadmin/internal/security/jwt"
	"go-blogadmin/pkg/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBadCredentials 用户名或密码错误
	ErrBadCredentials = errors.New("bad credentials")
	// ErrUserDisabled 账号已停用
	ErrUserDisabled = errors.New("user disabled")
)

// AuthService 登录、登出与会话校验。
// 颁发的 JTI 写入 Redis 白名单，登出即删除，令牌随之失效。
type AuthService struct {
	UserDAO   *dao.UserDAO
	RoleDAO   *dao.RoleDAO
	JWT       *jwt.Manager
	Redis     *rds.Client
	JTIPrefix string
	Log       *logging.Logger
}

func NewAuthService(userDAO *dao.UserDAO, roleDAO *dao.RoleDAO, jm *jwt.Manager, r *rds.Client, jtiPrefix string, log *logging.Logger) *AuthService {
	return &AuthService{UserDAO: userDAO, RoleDAO: roleDAO, JWT: jm, Redis: r, JTIPrefix: jtiPrefix, Log: log}
}

// LoginResult 登录返回
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login 密码校验通过后颁发令牌。
// 旧的 32 位 MD5 口令验证通过时顺手升级为 bcrypt。
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*LoginResult, error) {
	u, err := s.UserDAO.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !crypto.VerifyPassword(password, u.Password) {
		return nil, ErrBadCredentials
	}
	if u.Status != 1 {
		return nil, ErrUserDisabled
	}
	if crypto.IsLegacyMD5(u.Password) {
		if err := s.UserDAO.UpdatePassword(ctx, u.ID, crypto.HashPassword(password)); err != nil {
			s.Log.WithContext(ctx).Warn("password_upgrade_failed", zap.Int64("uid", u.ID), zap.Error(err))
		}
	}

	jti := uuid.NewString()
	token, err := s.JWT.Generate(u.ID, jti)
	if err != nil {
		return nil, err
	}
	if err := s.Redis.SetTTL(ctx, s.JTIPrefix+jti, u.ID, s.JWT.ExpireDuration()); err != nil {
		return nil, err
	}
	if err := s.UserDAO.RecordLogin(ctx, u.ID, ip); err != nil {
		s.Log.WithContext(ctx).Warn("record_login_failed", zap.Int64("uid", u.ID), zap.Error(err))
	}
	s.Log.WithContext(ctx).Info("user_login", zap.Int64("uid", u.ID), zap.String("ip", ip))
	return &LoginResult{Token: token, User: u}, nil
}

// Logout 删除 JTI 白名单记录
func (s *AuthService) Logout(ctx context.Context, jti string) {
	s.Redis.Del(ctx, s.JTIPrefix+jti)
}

// Verify 解析令牌并检查 JTI 仍在白名单
func (s *AuthService) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.Redis.GetString(ctx, s.JTIPrefix+claims.JTI) == "" {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

// UserInfo 当前用户信息及角色标识，供前端初始化
type UserInfo struct {
	User  *model.User `json:"user"`
	Roles []string    `json:"roles"`
}

func (s *AuthService) UserInfo(ctx context.Context, uid int64) (*UserInfo, error) {
	u, err := s.UserDAO.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("user not found")
	}
	roles, err := s.RoleDAO.ListRolesByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, r.RoleLabel)
	}
	return &UserInfo{User: u, Roles: labels}, nil
}
