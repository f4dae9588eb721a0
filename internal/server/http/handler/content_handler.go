package handler

import (
	"context"
	"errors"
	"strconv"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/server/http/middleware"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContentHandler 分类、标签、友链、站点配置、说说与审核类内容的后台接口
type ContentHandler struct {
	Category *service.CategoryService
	Tag      *service.TagService
	Link     *service.FriendLinkService
	Site     *service.SiteConfigService
	Comment  *service.CommentService
	Message  *service.MessageService
	Talk     *service.TalkService
}

func NewContentHandler(
	category *service.CategoryService,
	tag *service.TagService,
	link *service.FriendLinkService,
	site *service.SiteConfigService,
	comment *service.CommentService,
	message *service.MessageService,
	talk *service.TalkService,
) *ContentHandler {
	return &ContentHandler{
		Category: category, Tag: tag, Link: link, Site: site,
		Comment: comment, Message: message, Talk: talk,
	}
}

// ===== 分类 =====

func (h *ContentHandler) ListCategories(c *gin.Context) {
	list, err := h.Category.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load categories failed")
		return
	}
	response.Success(c, list)
}

type nameReq struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required,max=50"`
}

func (h *ContentHandler) SaveCategory(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "name required")
		return
	}
	cat := &model.Category{ID: req.ID, Name: req.Name}
	if err := h.Category.Save(c.Request.Context(), cat); err != nil {
		if errors.Is(err, service.ErrNameExists) {
			response.Error(c, retcode.DATA_EXISTS, "category name exists")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "save category failed")
		return
	}
	response.Success(c, gin.H{"id": cat.ID})
}

func (h *ContentHandler) DeleteCategory(c *gin.Context) {
	deleteByID(c, h.Category.Delete, "category")
}

// ===== 标签 =====

func (h *ContentHandler) ListTags(c *gin.Context) {
	list, err := h.Tag.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load tags failed")
		return
	}
	response.Success(c, list)
}

func (h *ContentHandler) SaveTag(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "name required")
		return
	}
	t := &model.Tag{ID: req.ID, Name: req.Name}
	if err := h.Tag.Save(c.Request.Context(), t); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "save tag failed")
		return
	}
	response.Success(c, gin.H{"id": t.ID})
}

func (h *ContentHandler) DeleteTag(c *gin.Context) {
	deleteByID(c, h.Tag.Delete, "tag")
}

// ===== 友链 =====

func (h *ContentHandler) ListLinks(c *gin.Context) {
	list, err := h.Link.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load links failed")
		return
	}
	response.Success(c, list)
}

type linkReq struct {
	ID     int64  `json:"id"`
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
	URL    string `json:"url" binding:"required,url"`
	Intro  string `json:"intro"`
}

func (h *ContentHandler) SaveLink(c *gin.Context) {
	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid link payload")
		return
	}
	l := &model.FriendLink{ID: req.ID, Name: req.Name, Avatar: req.Avatar, URL: req.URL, Intro: req.Intro}
	if err := h.Link.Save(c.Request.Context(), l); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "save link failed")
		return
	}
	response.Success(c, gin.H{"id": l.ID})
}

func (h *ContentHandler) DeleteLink(c *gin.Context) {
	deleteByID(c, h.Link.Delete, "link")
}

// ===== 站点配置 =====

func (h *ContentHandler) GetSiteConfig(c *gin.Context) {
	cfg, err := h.Site.Get(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load site config failed")
		return
	}
	response.Success(c, gin.H{"config": cfg})
}

type siteConfigReq struct {
	Config string `json:"config" binding:"required"`
}

func (h *ContentHandler) UpdateSiteConfig(c *gin.Context) {
	var req siteConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "config required")
		return
	}
	if err := h.Site.Update(c.Request.Context(), req.Config); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "update site config failed")
		return
	}
	response.Success(c, nil)
}

// ===== 评论 / 留言审核 =====

func (h *ContentHandler) ListComments(c *gin.Context) {
	page, size := pagination(c)
	isReview, _ := strconv.Atoi(c.DefaultQuery("is_review", "-1"))
	list, total, err := h.Comment.ListAdmin(c.Request.Context(), int8(isReview), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load comments failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

type reviewReq struct {
	IDs      []int64 `json:"ids" binding:"required,min=1"`
	IsReview int8    `json:"is_review" binding:"oneof=0 1"`
}

func (h *ContentHandler) ReviewComments(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "ids required")
		return
	}
	if err := h.Comment.Review(c.Request.Context(), req.IDs, req.IsReview); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "review comments failed")
		return
	}
	response.Success(c, nil)
}

func (h *ContentHandler) DeleteComment(c *gin.Context) {
	deleteByID(c, h.Comment.Delete, "comment")
}

func (h *ContentHandler) ListMessages(c *gin.Context) {
	list, err := h.Message.ListAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load messages failed")
		return
	}
	response.Success(c, list)
}

func (h *ContentHandler) ReviewMessages(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "ids required")
		return
	}
	if err := h.Message.Review(c.Request.Context(), req.IDs, req.IsReview); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "review messages failed")
		return
	}
	response.Success(c, nil)
}

type idsReq struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

func (h *ContentHandler) DeleteMessages(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "ids required")
		return
	}
	if err := h.Message.Delete(c.Request.Context(), req.IDs); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "delete messages failed")
		return
	}
	response.Success(c, nil)
}

// ===== 说说 =====

func (h *ContentHandler) ListTalks(c *gin.Context) {
	page, size := pagination(c)
	list, total, err := h.Talk.ListAdmin(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load talks failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

type talkReq struct {
	ID      int64  `json:"id"`
	Content string `json:"content" binding:"required"`
	Images  string `json:"images"`
	IsTop   int8   `json:"is_top"`
	Status  int8   `json:"status" binding:"oneof=1 2"`
}

func (h *ContentHandler) SaveTalk(c *gin.Context) {
	var req talkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid talk payload")
		return
	}
	t := &model.Talk{
		ID: req.ID, UserID: middleware.UID(c), Content: req.Content,
		Images: req.Images, IsTop: req.IsTop, Status: req.Status,
	}
	if err := h.Talk.Save(c.Request.Context(), t); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "save talk failed")
		return
	}
	response.Success(c, gin.H{"id": t.ID})
}

func (h *ContentHandler) DeleteTalk(c *gin.Context) {
	deleteByID(c, h.Talk.Delete, "talk")
}

// deleteByID :id 路径参数形式的删除接口公共部分
func deleteByID(c *gin.Context, fn func(ctx context.Context, id int64) error, what string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid "+what+" id")
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrInUse) {
			response.Error(c, retcode.HAS_CHILDREN, what+" still referenced")
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, "delete "+what+" failed")
		return
	}
	response.Success(c, nil)
}
