package api

import (
	"blooddonation/internal/auth"
	"blooddonation/internal/config"
	"blooddonation/internal/model"
	"blooddonation/internal/payment"
	"blooddonation/internal/service"
	"blooddonation/internal/storage"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultStoreTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg          config.Config
	repo         model.Repository
	authManager  *auth.Manager
	cookie       *auth.SessionCookie
	storeTimeout time.Duration
	limiter      *RateLimiter

	// 服务层
	guard    *service.Guard
	users    *service.UserService
	requests *service.RequestService
	blogs    *service.BlogService
	payments *service.PaymentService
	stats    *service.StatsService
	media    *service.MediaService
}

// NewHTTPHandler 创建 HTTP 处理器实例
//
// intents 为空时支付意图接口返回 502；rdb 为空时不启用限流。
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, intents payment.IntentCreator, rdb *redis.Client) (*HTTPHandler, error) {
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	RegisterValidators()

	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}

	guard := service.NewGuard(repo)
	handler := &HTTPHandler{
		cfg:          cfg,
		repo:         repo,
		authManager:  authManager,
		cookie:       auth.NewSessionCookie(cfg.CookieName, cfg.CookieDomain, cfg.IsProduction()),
		storeTimeout: timeout,
		limiter:      NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute),
		guard:        guard,
		users:        service.NewUserService(repo, guard),
		requests:     service.NewRequestService(repo, guard),
		blogs:        service.NewBlogService(repo, guard),
		payments:     service.NewPaymentService(repo, guard, payment.NewBridge(intents, cfg.PaymentCurrency)),
		stats:        service.NewStatsService(repo),
		media:        service.NewMediaService(store, normalisePublicBase(cfg.StoragePublicBaseURL), cfg.UploadMaxBytes),
	}
	return handler, nil
}

// storeContext 为单次请求的存储操作设置超时
func (h *HTTPHandler) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.storeTimeout)
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// Root is the liveness banner.
func (h *HTTPHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "blood donation server is running")
}

// Health pings the store.
func (h *HTTPHandler) Health(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	if err := h.repo.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("health check failed")
		ServiceUnavailable(c, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
