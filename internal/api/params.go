package api

import (
	"blooddonation/internal/entity"
	"strings"

	"github.com/gin-gonic/gin"
)

func bindID(c *gin.Context) (string, bool) {
	var uri entity.IDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		InvalidPayload(c, err)
		return "", false
	}
	return strings.TrimSpace(uri.ID), true
}

func bindEmail(c *gin.Context) (string, bool) {
	var uri entity.EmailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		InvalidPayload(c, err)
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(uri.Email)), true
}

func bindPage(c *gin.Context) (entity.BaseParams, bool) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c, err)
		return params, false
	}
	return params, true
}

// allowSelfOrAdmin 访问他人数据需要管理员权限
func (h *HTTPHandler) allowSelfOrAdmin(c *gin.Context, email string) bool {
	if strings.EqualFold(email, CurrentEmail(c)) {
		return true
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()
	if _, err := h.guard.Authorize(ctx, CurrentEmail(c), entity.RoleAdmin); err != nil {
		WriteError(c, err)
		return false
	}
	return true
}
