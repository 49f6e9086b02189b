package api

import (
	"blooddonation/internal/auth"
	"blooddonation/internal/entity"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const currentClaimsKey = "current-claims"

// AuthMiddleware 校验会话令牌（优先 Cookie，其次 Authorization 头）
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := h.cookie.Read(c)
		if token == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			}
		}
		if token == "" {
			Unauthorized(c, "missing session token")
			return
		}

		claims, err := h.authManager.ParseToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ErrorResponse(c, http.StatusUnauthorized, ErrCodeSessionExpired, "session expired")
				return
			}
			Unauthorized(c, "invalid session token")
			return
		}

		c.Set(currentClaimsKey, claims)
		c.Next()
	}
}

// RequireRole 要求当前用户持有列出的角色之一；每次请求都会回查数据库，角色变更立即生效
func (h *HTTPHandler) RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.storeContext(c)
		defer cancel()

		if _, err := h.guard.Authorize(ctx, CurrentEmail(c), roles...); err != nil {
			WriteError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin 需要管理员权限
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return h.RequireRole(entity.RoleAdmin)
}

// RequireVolunteer 需要志愿者权限
func (h *HTTPHandler) RequireVolunteer() gin.HandlerFunc {
	return h.RequireRole(entity.RoleVolunteer)
}

// CurrentClaims 获取当前会话的声明
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(currentClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

// CurrentEmail 当前会话的邮箱，未登录时为空
func CurrentEmail(c *gin.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.Email
	}
	return ""
}
