package api

import (
	"blooddonation/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		status         int
		code           string
		message        string
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "BadRequest",
			status:         http.StatusBadRequest,
			code:           ErrCodeInvalidRequest,
			message:        "无效的请求",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
			expectedMsg:    "无效的请求",
		},
		{
			name:           "NotFound",
			status:         http.StatusNotFound,
			code:           ErrCodeNotFound,
			message:        "请求不存在",
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeNotFound,
			expectedMsg:    "请求不存在",
		},
		{
			name:           "InternalError",
			status:         http.StatusInternalServerError,
			code:           ErrCodeInternalError,
			message:        "服务器内部错误",
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "服务器内部错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponse(c, tt.status, tt.code, tt.message)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp APIError
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}

			if resp.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, resp.Code)
			}
			if resp.Message != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestWriteErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "Invalid with code",
			err:            &service.Error{Kind: service.KindInvalid, Code: service.CodeInvalidAmount, Message: "price too small"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidAmount,
			expectedMsg:    "price too small",
		},
		{
			name:           "Unauthorized",
			err:            service.Unauthorized("no session"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   ErrCodeUnauthorized,
			expectedMsg:    "no session",
		},
		{
			name:           "Forbidden",
			err:            &service.Error{Kind: service.KindForbidden, Message: "admins only"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   ErrCodeForbidden,
			expectedMsg:    "admins only",
		},
		{
			name:           "NotFound",
			err:            &service.Error{Kind: service.KindNotFound, Message: "request not found"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeNotFound,
			expectedMsg:    "request not found",
		},
		{
			name:           "Conflict",
			err:            &service.Error{Kind: service.KindConflict, Code: service.CodeInvalidTransition, Message: "done is final"},
			expectedStatus: http.StatusConflict,
			expectedCode:   ErrCodeInvalidTransition,
			expectedMsg:    "done is final",
		},
		{
			name:           "Processor hides cause",
			err:            &service.Error{Kind: service.KindProcessor, Message: "stripe: card_declined", Err: errors.New("boom")},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   ErrCodePaymentFailed,
			expectedMsg:    "payment processor unavailable",
		},
		{
			name:           "Store hides cause",
			err:            service.Storage("dial tcp 10.0.0.1:3306", errors.New("refused")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "internal server error",
		},
		{
			name:           "Unknown error",
			err:            errors.New("unexpected"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(c, tt.err)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var resp APIError
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, resp.Code)
			}
			if resp.Message != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestInvalidPayloadReportsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	type payload struct {
		Status string `json:"status" binding:"required,donation_status"`
		Role   string `json:"role" binding:"omitempty,role"`
	}

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing status", body: `{}`, field: "status"},
		{name: "unknown status", body: `{"status":"shipped"}`, field: "status"},
		{name: "unknown role", body: `{"status":"done","role":"root"}`, field: "role"},
		{name: "broken json", body: `{"status":`, field: "payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req payload
			err := c.ShouldBindJSON(&req)
			if err == nil {
				t.Fatal("expected binding error")
			}
			InvalidPayload(c, err)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != ErrCodeInvalidRequest {
				t.Errorf("expected code %s, got %s", ErrCodeInvalidRequest, resp.Code)
			}
			if _, ok := resp.Details[tt.field]; !ok {
				t.Errorf("expected details for %q, got %v", tt.field, resp.Details)
			}
		})
	}
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(nil, 1, time.Minute)
	r := gin.New()
	r.GET("/jwt", limiter.Middleware(KeyByIPAndPath), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jwt", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, w.Code)
		}
	}
}

func TestShortcutFunctions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		call     func(c *gin.Context)
		expected int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, ErrCodeInvalidRequest, "测试错误") }, http.StatusBadRequest},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "需要登录") }, http.StatusUnauthorized},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "没有权限") }, http.StatusForbidden},
		{"NotFound", func(c *gin.Context) { NotFound(c, ErrCodeNotFound, "资源不存在") }, http.StatusNotFound},
		{"InternalError", func(c *gin.Context) { InternalError(c, "服务器错误") }, http.StatusInternalServerError},
		{"ServiceUnavailable", func(c *gin.Context) { ServiceUnavailable(c, "服务不可用") }, http.StatusServiceUnavailable},
		{"MissingField", func(c *gin.Context) { MissingField(c, "file") }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.call(c)

			if w.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected context to be aborted")
			}
		})
	}
}
