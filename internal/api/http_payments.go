package api

import (
	"blooddonation/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntent 以主币单位报价，换算为最小单位后向支付服务申请意图
func (h *HTTPHandler) CreatePaymentIntent(c *gin.Context) {
	var req entity.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	// 支付服务调用不受存储超时限制
	resp, err := h.payments.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) RecordPayment(c *gin.Context) {
	var req entity.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	record, err := h.payments.Record(ctx, CurrentEmail(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *HTTPHandler) ListPaymentsByEmail(c *gin.Context) {
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	params, ok := bindPage(c)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.payments.ListByEmail(ctx, CurrentEmail(c), email, params)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) ListPayments(c *gin.Context) {
	params, ok := bindPage(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.payments.ListAll(ctx, params)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard 管理员与志愿者共用的统计面板
func (h *HTTPHandler) Dashboard(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	dashboard, err := h.stats.Dashboard(ctx)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
