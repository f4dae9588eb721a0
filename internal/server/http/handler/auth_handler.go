package handler

import (
	"errors"

	"go-blogadmin/internal/server/http/middleware"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 登录态相关接口
type AuthHandler struct {
	Auth *service.AuthService
	Menu *service.MenuService
	Perm *service.PermissionService
}

func NewAuthHandler(auth *service.AuthService, menu *service.MenuService, perm *service.PermissionService) *AuthHandler {
	return &AuthHandler{Auth: auth, Menu: menu, Perm: perm}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "username and password required")
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials):
			response.Error(c, retcode.LOGIN_ERROR, "incorrect username or password")
		case errors.Is(err, service.ErrUserDisabled):
			response.Error(c, retcode.AUTH_ERROR, "account disabled")
		default:
			response.Error(c, retcode.EXCEPTION, "login failed")
		}
		return
	}
	response.Success(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if jti := c.GetString(middleware.CtxJTIKey); jti != "" {
		h.Auth.Logout(c.Request.Context(), jti)
	}
	response.Success(c, nil)
}

// UserInfo 当前用户信息、角色标识与权限点
func (h *AuthHandler) UserInfo(c *gin.Context) {
	uid := middleware.UID(c)
	info, err := h.Auth.UserInfo(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load user info failed")
		return
	}
	perms, err := h.Perm.GetUserPermissions(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load permissions failed")
		return
	}
	response.Success(c, gin.H{
		"user":        info.User,
		"roles":       info.Roles,
		"permissions": perms,
	})
}

// Routers 当前用户的前端路由树
func (h *AuthHandler) Routers(c *gin.Context) {
	routes, err := h.Menu.GetUserMenuTree(c.Request.Context(), middleware.UID(c))
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load routers failed")
		return
	}
	response.Success(c, routes)
}
