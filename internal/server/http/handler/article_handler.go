package handler

import (
	"context"
	"errors"
	"strconv"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/repository/dao"
	"go-blogadmin/internal/server/http/middleware"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// ArticleHandler 后台文章管理
type ArticleHandler struct {
	Article *service.ArticleService
}

func NewArticleHandler(article *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{Article: article}
}

func (h *ArticleHandler) List(c *gin.Context) {
	page, size := pagination(c)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	tagID, _ := strconv.ParseInt(c.Query("tag_id"), 10, 64)
	status, _ := strconv.Atoi(c.DefaultQuery("status", "0"))
	isDelete, _ := strconv.Atoi(c.DefaultQuery("is_delete", "0"))
	list, total, err := h.Article.ListAdmin(c.Request.Context(), dao.ArticleQuery{
		Keyword:    c.Query("keyword"),
		CategoryID: categoryID,
		TagID:      tagID,
		Status:     int8(status),
		IsDelete:   int8(isDelete),
		Page:       page,
		Size:       size,
	})
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load articles failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

func (h *ArticleHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid article id")
		return
	}
	detail, err := h.Article.Detail(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.Error(c, retcode.NOT_EXISTS, "article not found")
			return
		}
		response.Error(c, retcode.DB_READ_ERROR, "load article failed")
		return
	}
	response.Success(c, detail)
}

type articleReq struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Cover      string  `json:"cover"`
	Summary    string  `json:"summary"`
	Content    string  `json:"content" binding:"required"`
	Status     int8    `json:"status" binding:"oneof=1 2 3"`
	IsTop      int8    `json:"is_top"`
	TagIDs     []int64 `json:"tag_ids"`
}

func (h *ArticleHandler) Save(c *gin.Context) {
	var req articleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid article payload")
		return
	}
	a := &model.Article{
		ID: req.ID, UserID: middleware.UID(c), CategoryID: req.CategoryID,
		Title: req.Title, Cover: req.Cover, Summary: req.Summary,
		Content: req.Content, Status: req.Status, IsTop: req.IsTop,
	}
	if err := h.Article.Save(c.Request.Context(), a, req.TagIDs); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "save article failed")
		return
	}
	response.Success(c, gin.H{"id": a.ID})
}

type articleFlagReq struct {
	Value int8 `json:"value" binding:"oneof=0 1"`
}

// SetDelete 回收站进出
func (h *ArticleHandler) SetDelete(c *gin.Context) {
	h.setFlag(c, h.Article.SetDelete)
}

func (h *ArticleHandler) SetTop(c *gin.Context) {
	h.setFlag(c, h.Article.SetTop)
}

func (h *ArticleHandler) setFlag(c *gin.Context, fn func(ctx context.Context, id int64, v int8) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid article id")
		return
	}
	var req articleFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid flag value")
		return
	}
	if err := fn(c.Request.Context(), id, req.Value); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "update article failed")
		return
	}
	response.Success(c, nil)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid article id")
		return
	}
	if err := h.Article.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "delete article failed")
		return
	}
	response.Success(c, nil)
}
