package api

import (
	"blooddonation/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPendingRequests 公开的待处理请求列表
func (h *HTTPHandler) ListPendingRequests(c *gin.Context) {
	params, ok := bindPage(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.requests.ListPending(ctx, params)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetRequest(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	record, err := h.requests.Get(ctx, id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListRecipientRequests 某位受血者发布的请求，可按状态过滤
func (h *HTTPHandler) ListRecipientRequests(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	var query entity.RequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.requests.ListByRecipient(ctx, email, query)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) RecentRequests(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	records, err := h.requests.Recent(ctx, email)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *HTTPHandler) PendingCount(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	count, err := h.requests.PendingCount(ctx)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.CountResponse{Count: count})
}

// ListAllRequests 管理员与志愿者的完整列表
func (h *HTTPHandler) ListAllRequests(c *gin.Context) {
	var query entity.RequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.requests.ListAll(ctx, query)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) CreateRequest(c *gin.Context) {
	var req entity.RequestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	record, err := h.requests.Create(ctx, CurrentEmail(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *HTTPHandler) UpdateRequest(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.RequestUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	record, err := h.requests.UpdateContent(ctx, CurrentEmail(c), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SetDonationStatus 状态流转，合法性由状态机校验
func (h *HTTPHandler) SetDonationStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.DonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	record, err := h.requests.SetStatus(ctx, CurrentEmail(c), id, req.Status)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *HTTPHandler) DeleteRequest(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	if err := h.requests.Delete(ctx, CurrentEmail(c), id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
