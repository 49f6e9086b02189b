package api

import (
	"blooddonation/internal/entity"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpsertUser 首次登录时创建用户，已存在时原样返回
func (h *HTTPHandler) UpsertUser(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	var req entity.UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, created, err := h.users.Ensure(ctx, email, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

func (h *HTTPHandler) GetRole(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok || !h.allowSelfOrAdmin(c, email) {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	role, err := h.users.Role(ctx, email)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *HTTPHandler) GetUser(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok || !h.allowSelfOrAdmin(c, email) {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.users.Get(ctx, email)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile 修改个人资料，仅本人或管理员
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.UserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, CurrentEmail(c), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.users.List(ctx, query)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) SetUserRole(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.users.SetRole(ctx, id, req.Role)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HTTPHandler) SetUserStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.users.SetStatus(ctx, id, req.Status)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HTTPHandler) CountUsers(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	count, err := h.users.Count(ctx)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.CountResponse{Count: count})
}

// RecentDonors 最近注册的三位用户
func (h *HTTPHandler) RecentDonors(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	users, err := h.users.Recent(ctx)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *HTTPHandler) SearchDonors(c *gin.Context) {
	var filter entity.DonorSearch
	if err := c.ShouldBindQuery(&filter); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	users, err := h.users.SearchDonors(ctx, filter)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
