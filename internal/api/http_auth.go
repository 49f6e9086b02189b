package api

import (
	"blooddonation/internal/auth"
	"blooddonation/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IssueToken 根据身份提供方返回的声明签发会话令牌并写入 Cookie
func (h *HTTPHandler) IssueToken(c *gin.Context) {
	var req entity.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(auth.Identity{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to sign session token")
		InternalError(c, "failed to issue session")
		return
	}

	h.cookie.Set(c, token, expiresAt)
	c.JSON(http.StatusOK, gin.H{"success": true, "expires_at": expiresAt})
}

// Logout 清除会话 Cookie
func (h *HTTPHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
