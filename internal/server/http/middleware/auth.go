package middleware

import (
	"context"
	"strings"

	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// CtxUIDKey gin 上下文中的当前用户 ID
	CtxUIDKey = "uid"
	// CtxJTIKey 当前令牌 JTI，登出时使用
	CtxJTIKey = "jti"
)

// Auth 解析 Bearer 令牌并校验 JTI 白名单
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if strings.HasPrefix(token, "Bearer ") {
			token = token[len("Bearer "):]
		}
		if token == "" {
			response.Error(c, retcode.AUTH_ERROR, "missing token")
			c.Abort()
			return
		}
		claims, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, retcode.ACCESS_TOKEN_TIMEOUT, "invalid token")
			c.Abort()
			return
		}
		c.Set(CtxUIDKey, claims.UserID)
		c.Set(CtxJTIKey, claims.JTI)
		ctx := context.WithValue(c.Request.Context(), logging.UserIDCtxKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UID 取当前登录用户 ID，未登录为 0
func UID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUIDKey)
	if !ok {
		return 0
	}
	uid, _ := v.(int64)
	return uid
}

// RequirePermission 权限点校验，需在 Auth 之后挂载
func RequirePermission(perm *service.PermissionService, permCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := UID(c)
		ok, err := perm.HasPermission(c.Request.Context(), uid, permCode)
		if err != nil {
			response.Error(c, retcode.EXCEPTION, "permission check failed")
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, retcode.AUTH_ERROR, "permission denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
