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

// MenuHandler 菜单管理
type MenuHandler struct {
	Menu *service.MenuService
}

func NewMenuHandler(menu *service.MenuService) *MenuHandler { return &MenuHandler{Menu: menu} }

// Tree 后台全量菜单树
func (h *MenuHandler) Tree(c *gin.Context) {
	tree, err := h.Menu.ListMenuTree(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load menu tree failed")
		return
	}
	response.Success(c, tree)
}

type menuReq struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Path      string  `json:"path"`
	Component string  `json:"component"`
	Icon      string  `json:"icon"`
	ParentID  int64   `json:"parent_id"`
	OrderNum  int     `json:"order_num"`
	Hidden    int8    `json:"hidden"`
	Type      string  `json:"type" binding:"required,oneof=M C F"`
	Perms     *string `json:"perms"`
}

func (r *menuReq) toModel() *model.Menu {
	return &model.Menu{
		ID: r.ID, Name: r.Name, Path: r.Path, Component: r.Component,
		Icon: r.Icon, ParentID: r.ParentID, OrderNum: r.OrderNum,
		Hidden: r.Hidden, Type: r.Type, Perms: r.Perms,
	}
}

func (h *MenuHandler) Save(c *gin.Context) {
	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid menu payload")
		return
	}
	m := req.toModel()
	var err error
	if m.ID == 0 {
		err = h.Menu.Create(c.Request.Context(), m)
	} else {
		err = h.Menu.Update(c.Request.Context(), m)
	}
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			response.Error(c, retcode.NOT_EXISTS, "menu not found")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "save menu failed")
		return
	}
	response.Success(c, gin.H{"id": m.ID})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid menu id")
		return
	}
	if err := h.Menu.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMenuHasChildren) {
			response.Error(c, retcode.HAS_CHILDREN, "remove sub menus first")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "delete menu failed")
		return
	}
	response.Success(c, nil)
}
