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

// RoleHandler 角色管理
type RoleHandler struct {
	Role *service.RoleService
}

func NewRoleHandler(role *service.RoleService) *RoleHandler { return &RoleHandler{Role: role} }

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.Role.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load roles failed")
		return
	}
	response.Success(c, roles)
}

type roleReq struct {
	ID        int64  `json:"id"`
	RoleName  string `json:"role_name" binding:"required"`
	RoleLabel string `json:"role_label" binding:"required"`
	Remark    string `json:"remark"`
}

func (h *RoleHandler) Save(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid role payload")
		return
	}
	r := &model.Role{ID: req.ID, RoleName: req.RoleName, RoleLabel: req.RoleLabel, Remark: req.Remark}
	var err error
	if r.ID == 0 {
		err = h.Role.Create(c.Request.Context(), r)
	} else {
		err = h.Role.Update(c.Request.Context(), r)
	}
	if err != nil {
		if errors.Is(err, service.ErrRoleLabelExists) {
			response.Error(c, retcode.DATA_EXISTS, "role label already exists")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "save role failed")
		return
	}
	response.Success(c, gin.H{"id": r.ID})
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid role id")
		return
	}
	if err := h.Role.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "delete role failed")
		return
	}
	response.Success(c, nil)
}

// MenuIDs 角色已绑定的菜单，分配界面回显
func (h *RoleHandler) MenuIDs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid role id")
		return
	}
	ids, err := h.Role.ListRoleMenuIDs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load role menus failed")
		return
	}
	response.Success(c, ids)
}

type assignMenusReq struct {
	MenuIDs []int64 `json:"menu_ids"`
}

// AssignMenus 整体替换角色的菜单绑定
func (h *RoleHandler) AssignMenus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid role id")
		return
	}
	var req assignMenusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid payload")
		return
	}
	if err := h.Role.AssignRoleMenus(c.Request.Context(), id, req.MenuIDs); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "assign menus failed")
		return
	}
	response.Success(c, nil)
}
