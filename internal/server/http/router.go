package http

import (
	"go-blogadmin/internal/config"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/mq/kafka"
	"go-blogadmin/internal/server/http/handler"
	"go-blogadmin/internal/server/http/middleware"
	"go-blogadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter 装配路由。
// /api/blog 为前台开放接口，/api/admin 需要登录，写接口再挂权限点。
func NewRouter(
	cfg *config.Config,
	hs *handler.Set,
	auth *service.AuthService,
	perm *service.PermissionService,
	health *HealthChecker,
	producer *kafka.Producer,
	log *logging.Logger,
) *gin.Engine {
	if cfg.HTTP.Mode != "" {
		gin.SetMode(cfg.HTTP.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Trace(cfg.AppMeta.Name))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Metrics())

	r.GET("/healthz", health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ===== 前台 =====
	blog := r.Group("/api/blog")
	{
		blog.GET("/articles", hs.Blog.ListArticles)
		blog.GET("/articles/:id", hs.Blog.ArticleDetail)
		blog.GET("/articles/search", hs.Blog.Search)
		blog.GET("/archives", hs.Blog.Archives)
		blog.GET("/categories", hs.Blog.ListCategories)
		blog.GET("/tags", hs.Blog.ListTags)
		blog.GET("/comments", hs.Blog.ListComments)
		blog.POST("/comments", hs.Blog.CreateComment)
		blog.GET("/messages", hs.Blog.ListMessages)
		blog.POST("/messages", hs.Blog.CreateMessage)
		blog.GET("/talks", hs.Blog.ListTalks)
		blog.GET("/links", hs.Blog.ListLinks)
		blog.GET("/site-config", hs.Blog.SiteConfig)
		blog.POST("/visit", hs.Blog.ReportVisit)
		blog.GET("/chat/ws", hs.Blog.ChatWS)
	}

	r.POST("/api/admin/login", hs.Auth.Login)

	// ===== 后台 =====
	admin := r.Group("/api/admin")
	admin.Use(middleware.Auth(auth))
	admin.Use(middleware.OpLog(producer, log))
	{
		admin.POST("/logout", hs.Auth.Logout)
		admin.GET("/user-info", hs.Auth.UserInfo)
		admin.GET("/routers", hs.Auth.Routers)
		admin.GET("/overview", hs.Log.Overview)

		need := func(code string) gin.HandlerFunc { return middleware.RequirePermission(perm, code) }

		users := admin.Group("/users")
		{
			users.GET("", need("system:user:list"), hs.User.List)
			users.POST("", need("system:user:save"), hs.User.Save)
			users.PUT("/:id/password", need("system:user:resetPwd"), hs.User.ResetPassword)
			users.PUT("/:id/status", need("system:user:status"), hs.User.SetStatus)
			users.PUT("/:id/roles", need("system:user:assignRole"), hs.User.AssignRoles)
			users.DELETE("/:id", need("system:user:delete"), hs.User.Delete)
		}

		roles := admin.Group("/roles")
		{
			roles.GET("", need("system:role:list"), hs.Role.List)
			roles.POST("", need("system:role:save"), hs.Role.Save)
			roles.GET("/:id/menus", need("system:role:list"), hs.Role.MenuIDs)
			roles.PUT("/:id/menus", need("system:role:assignMenu"), hs.Role.AssignMenus)
			roles.DELETE("/:id", need("system:role:delete"), hs.Role.Delete)
		}

		menus := admin.Group("/menus")
		{
			menus.GET("", need("system:menu:list"), hs.Menu.Tree)
			menus.POST("", need("system:menu:save"), hs.Menu.Save)
			menus.DELETE("/:id", need("system:menu:delete"), hs.Menu.Delete)
		}

		articles := admin.Group("/articles")
		{
			articles.GET("", need("blog:article:list"), hs.Article.List)
			articles.GET("/:id", need("blog:article:list"), hs.Article.Detail)
			articles.POST("", need("blog:article:save"), hs.Article.Save)
			articles.PUT("/:id/delete-flag", need("blog:article:recycle"), hs.Article.SetDelete)
			articles.PUT("/:id/top", need("blog:article:top"), hs.Article.SetTop)
			articles.DELETE("/:id", need("blog:article:delete"), hs.Article.Delete)
		}

		admin.GET("/categories", need("blog:category:list"), hs.Content.ListCategories)
		admin.POST("/categories", need("blog:category:save"), hs.Content.SaveCategory)
		admin.DELETE("/categories/:id", need("blog:category:delete"), hs.Content.DeleteCategory)

		admin.GET("/tags", need("blog:tag:list"), hs.Content.ListTags)
		admin.POST("/tags", need("blog:tag:save"), hs.Content.SaveTag)
		admin.DELETE("/tags/:id", need("blog:tag:delete"), hs.Content.DeleteTag)

		admin.GET("/links", need("blog:link:list"), hs.Content.ListLinks)
		admin.POST("/links", need("blog:link:save"), hs.Content.SaveLink)
		admin.DELETE("/links/:id", need("blog:link:delete"), hs.Content.DeleteLink)

		admin.GET("/site-config", need("blog:site:view"), hs.Content.GetSiteConfig)
		admin.PUT("/site-config", need("blog:site:update"), hs.Content.UpdateSiteConfig)

		admin.GET("/comments", need("blog:comment:list"), hs.Content.ListComments)
		admin.PUT("/comments/review", need("blog:comment:review"), hs.Content.ReviewComments)
		admin.DELETE("/comments/:id", need("blog:comment:delete"), hs.Content.DeleteComment)

		admin.GET("/messages", need("blog:message:list"), hs.Content.ListMessages)
		admin.PUT("/messages/review", need("blog:message:review"), hs.Content.ReviewMessages)
		admin.DELETE("/messages", need("blog:message:delete"), hs.Content.DeleteMessages)

		admin.GET("/talks", need("blog:talk:list"), hs.Content.ListTalks)
		admin.POST("/talks", need("blog:talk:save"), hs.Content.SaveTalk)
		admin.DELETE("/talks/:id", need("blog:talk:delete"), hs.Content.DeleteTalk)

		admin.GET("/logs/operations", need("monitor:oplog:list"), hs.Log.ListOperations)
		admin.DELETE("/logs/operations", need("monitor:oplog:delete"), hs.Log.DeleteOperations)
		admin.GET("/logs/visits", need("monitor:visitlog:list"), hs.Log.ListVisits)
	}

	return r
}
