package handler

import (
	"errors"
	"strconv"

	"go-blogadmin/internal/chat"
	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// BlogHandler 博客前台接口，无需登录
type BlogHandler struct {
	Auth    *service.AuthService
	Article *service.ArticleService
	Talk    *service.TalkService
	Comment *service.CommentService
	Message *service.MessageService
	Link    *service.FriendLinkService
	Site    *service.SiteConfigService
	Cat     *service.CategoryService
	Tag     *service.TagService
	Log     *service.LogService
	Hub     *chat.Hub
}

func NewBlogHandler(
	auth *service.AuthService,
	article *service.ArticleService,
	talk *service.TalkService,
	comment *service.CommentService,
	message *service.MessageService,
	link *service.FriendLinkService,
	site *service.SiteConfigService,
	cat *service.CategoryService,
	tag *service.TagService,
	log *service.LogService,
	hub *chat.Hub,
) *BlogHandler {
	return &BlogHandler{
		Auth: auth, Article: article, Talk: talk, Comment: comment,
		Message: message, Link: link, Site: site, Cat: cat, Tag: tag,
		Log: log, Hub: hub,
	}
}

func (h *BlogHandler) ListArticles(c *gin.Context) {
	page, size := pagination(c)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	tagID, _ := strconv.ParseInt(c.Query("tag_id"), 10, 64)
	list, total, err := h.Article.ListPublic(c.Request.Context(), categoryID, tagID, page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load articles failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

func (h *BlogHandler) ArticleDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "invalid article id")
		return
	}
	detail, err := h.Article.Detail(c.Request.Context(), id, false)
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

func (h *BlogHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.Article.Search(c.Request.Context(), c.Query("keyword"), limit)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "search failed")
		return
	}
	response.Success(c, list)
}

func (h *BlogHandler) Archives(c *gin.Context) {
	page, size := pagination(c)
	list, total, err := h.Article.Archives(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load archives failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

func (h *BlogHandler) ListCategories(c *gin.Context) {
	list, err := h.Cat.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load categories failed")
		return
	}
	response.Success(c, list)
}

func (h *BlogHandler) ListTags(c *gin.Context) {
	list, err := h.Tag.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load tags failed")
		return
	}
	response.Success(c, list)
}

// ===== 评论 =====

func (h *BlogHandler) ListComments(c *gin.Context) {
	page, size := pagination(c)
	articleID, _ := strconv.ParseInt(c.Query("article_id"), 10, 64)
	if articleID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "article_id required")
		return
	}
	list, total, err := h.Comment.ListByArticle(c.Request.Context(), articleID, page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load comments failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

type commentReq struct {
	ArticleID int64  `json:"article_id" binding:"required"`
	ReplyID   int64  `json:"reply_id"`
	Nickname  string `json:"nickname" binding:"required,max=64"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content" binding:"required,max=1024"`
}

// CreateComment 评论默认待审核，管理员通过后可见
func (h *BlogHandler) CreateComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid comment payload")
		return
	}
	cm := &model.Comment{
		ArticleID: req.ArticleID, ReplyID: req.ReplyID,
		Nickname: req.Nickname, Avatar: req.Avatar, Content: req.Content,
	}
	if err := h.Comment.Create(c.Request.Context(), cm); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "post comment failed")
		return
	}
	response.Success(c, gin.H{"id": cm.ID})
}

// ===== 留言板 =====

func (h *BlogHandler) ListMessages(c *gin.Context) {
	list, err := h.Message.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load messages failed")
		return
	}
	response.Success(c, list)
}

type messageReq struct {
	Nickname string `json:"nickname" binding:"required,max=64"`
	Avatar   string `json:"avatar"`
	Content  string `json:"content" binding:"required,max=512"`
}

func (h *BlogHandler) CreateMessage(c *gin.Context) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid message payload")
		return
	}
	m := &model.Message{Nickname: req.Nickname, Avatar: req.Avatar, Content: req.Content, IP: c.ClientIP()}
	if err := h.Message.Create(c.Request.Context(), m); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "post message failed")
		return
	}
	response.Success(c, gin.H{"id": m.ID})
}

// ===== 说说 / 友链 / 站点配置 =====

func (h *BlogHandler) ListTalks(c *gin.Context) {
	page, size := pagination(c)
	list, total, err := h.Talk.ListPublic(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load talks failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

func (h *BlogHandler) ListLinks(c *gin.Context) {
	list, err := h.Link.List(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load links failed")
		return
	}
	response.Success(c, list)
}

func (h *BlogHandler) SiteConfig(c *gin.Context) {
	cfg, err := h.Site.Get(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load site config failed")
		return
	}
	response.Success(c, gin.H{"config": cfg})
}

// ===== 访问上报 =====

type visitReq struct {
	Page string `json:"page" binding:"required,max=128"`
}

func (h *BlogHandler) ReportVisit(c *gin.Context) {
	var req visitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "page required")
		return
	}
	if err := h.Log.ReportVisit(c.Request.Context(), req.Page, c.ClientIP(), c.Request.UserAgent()); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "report visit failed")
		return
	}
	response.Success(c, nil)
}

// ===== 聊天室 =====

// ChatWS websocket 入口；带 token 的连接按登录身份接入，
// 游客连接 uid 固定为 0，只能发言不能撤回
func (h *BlogHandler) ChatWS(c *gin.Context) {
	var (
		uid      int64
		nickname = c.Query("nickname")
		avatar   = c.Query("avatar")
	)
	if token := c.Query("token"); token != "" {
		claims, err := h.Auth.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, retcode.AUTH_ERROR, "invalid token")
			return
		}
		uid = claims.UserID
		if info, err := h.Auth.UserInfo(c.Request.Context(), uid); err == nil && info.User != nil {
			nickname = info.User.Nickname
			avatar = info.User.Avatar
		}
	}
	if nickname == "" {
		nickname = "访客" + c.ClientIP()
	}
	if err := h.Hub.Serve(c.Writer, c.Request, uid, nickname, avatar, c.ClientIP()); err != nil {
		response.Error(c, retcode.EXCEPTION, "websocket upgrade failed")
	}
}
