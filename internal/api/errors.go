package api

import (
	"blooddonation/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeTooManyRequests    = "ERR_TOO_MANY_REQUESTS"

	// 认证错误码
	ErrCodeSessionExpired = "ERR_SESSION_EXPIRED"

	// 业务逻辑错误码
	ErrCodeMissingField      = "ERR_MISSING_FIELD"
	ErrCodeInvalidAmount     = service.CodeInvalidAmount
	ErrCodeInvalidTransition = service.CodeInvalidTransition
	ErrCodeInvalidStatus     = service.CodeInvalidStatus
	ErrCodeAccountBlocked    = service.CodeAccountBlocked
	ErrCodeDuplicate         = service.CodeDuplicate
	ErrCodePaymentFailed     = "ERR_PAYMENT_FAILED"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.AbortWithStatusJSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", map[string]string{field: "is required"})
}

// InvalidPayload 无效的请求体，附带字段级详情
func InvalidPayload(c *gin.Context, err error) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload", ValidationDetails(err))
}

// statusForKind 把服务层错误类别映射为 HTTP 状态码与默认错误码
func statusForKind(kind service.Kind) (int, string) {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest, ErrCodeInvalidRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden, ErrCodeForbidden
	case service.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case service.KindConflict:
		return http.StatusConflict, ErrCodeConflict
	case service.KindProcessor:
		return http.StatusBadGateway, ErrCodePaymentFailed
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteError 将服务层错误写成统一响应；基础设施错误会记录日志且不向客户端暴露细节
func WriteError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{Kind: service.KindStore, Message: "unexpected failure", Err: err}
	}
	status, code := statusForKind(svcErr.Kind)
	if svcErr.Code != "" {
		code = svcErr.Code
	}

	message := svcErr.Message
	if svcErr.Internal() {
		logrus.WithError(svcErr).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": c.GetString(requestIDContextKey),
			"kind":       svcErr.Kind.String(),
		}).Error("request failed")
		if svcErr.Kind == service.KindProcessor {
			message = "payment processor unavailable"
		} else {
			message = "internal server error"
		}
	}
	ErrorResponse(c, status, code, message)
}
