package handler

import (
	"errors"
	"strconv"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 后台用户管理
type UserHandler struct {
	User *service.UserService
	Role *service.RoleService
}

func NewUserHandler(user *service.UserService, role *service.RoleService) *UserHandler {
	return &UserHandler{User: user, Role: role}
}

func (h *UserHandler) List(c *gin.Context) {
	page, size := pagination(c)
	items, total, err := h.User.List(c.Request.Context(), c.Query("keyword"), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load users failed")
		return
	}
	response.Success(c, gin.H{"list": items, "total": total})
}

type userReq struct {
	ID       int64  `json:"id"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Intro    string `json:"intro"`
}

func (h *UserHandler) Save(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid user payload")
		return
	}
	u := &model.User{
		ID: req.ID, Username: req.Username, Nickname: req.Nickname,
		Avatar: req.Avatar, Email: req.Email, Intro: req.Intro,
	}
	var err error
	if u.ID == 0 {
		if req.Password == "" {
			response.Error(c, retcode.EMPTY_PARAMS, "password required")
			return
		}
		err = h.User.Create(c.Request.Context(), u, req.Password)
	} else {
		err = h.User.Update(c.Request.Context(), u)
	}
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.Error(c, retcode.DATA_EXISTS, "username already exists")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "save user failed")
		return
	}
	response.Success(c, gin.H{"id": u.ID})
}

type resetPasswordReq struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid user id")
		return
	}
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "password too short")
		return
	}
	if err := h.User.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "reset password failed")
		return
	}
	response.Success(c, nil)
}

type statusReq struct {
	Status int8 `json:"status" binding:"oneof=0 1"`
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid user id")
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid status")
		return
	}
	if err := h.User.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrProtectedUser) {
			response.Error(c, retcode.AUTH_ERROR, "cannot disable super admin")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "set status failed")
		return
	}
	response.Success(c, nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid user id")
		return
	}
	if err := h.User.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProtectedUser) {
			response.Error(c, retcode.AUTH_ERROR, "cannot delete super admin")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "delete user failed")
		return
	}
	response.Success(c, nil)
}

type assignRolesReq struct {
	RoleIDs []int64 `json:"role_ids"`
}

// AssignRoles 整体替换用户的角色绑定
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid user id")
		return
	}
	var req assignRolesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid payload")
		return
	}
	if err := h.Role.AssignUserRoles(c.Request.Context(), id, req.RoleIDs); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "assign roles failed")
		return
	}
	response.Success(c, nil)
}

// pagination 解析 page/size，越界回退默认值
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}
