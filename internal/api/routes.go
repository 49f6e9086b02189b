package api

import (
	"blooddonation/internal/entity"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有 HTTP 路由
func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	limited := h.limiter.Middleware(KeyByIPAndPath)
	authed := h.AuthMiddleware()
	admin := h.RequireAdmin()
	volunteer := h.RequireVolunteer()
	staff := h.RequireRole(entity.RoleAdmin, entity.RoleVolunteer)

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// 会话
	r.POST("/jwt", limited, h.IssueToken)
	r.GET("/logout", h.Logout)

	// 用户
	r.PUT("/users/:email", h.UpsertUser)
	r.GET("/role/:email", authed, h.GetRole)
	r.GET("/users/:email", authed, h.GetUser)
	r.PUT("/update-user/:id", authed, h.UpdateProfile)
	r.GET("/users", authed, admin, h.ListUsers)
	r.PUT("/user/role/:id", authed, admin, h.SetUserRole)
	r.PUT("/user/status/:id", authed, admin, h.SetUserStatus)
	r.GET("/user/count", h.CountUsers)
	r.GET("/three-donor", h.RecentDonors)
	r.GET("/search-donors", h.SearchDonors)

	// 献血请求
	r.GET("/requests", h.ListPendingRequests)
	r.GET("/request/:id", h.GetRequest)
	r.GET("/requests/:email", h.ListRecipientRequests)
	r.GET("/pending-count", h.PendingCount)
	r.GET("/recent-requests/:email", authed, h.RecentRequests)
	r.POST("/requests", authed, h.CreateRequest)
	r.PUT("/requests/:id", authed, h.SetDonationStatus)
	r.PUT("/request-up/:id", authed, h.UpdateRequest)
	r.DELETE("/requests/:id", authed, h.DeleteRequest)
	r.GET("/requests-admin", authed, admin, h.ListAllRequests)
	r.GET("/all-requests", authed, admin, h.ListAllRequests)
	r.GET("/requests-volunteer", authed, volunteer, h.ListAllRequests)
	r.PUT("/volun-donation-status/:id", authed, volunteer, h.SetDonationStatus)

	// 博客
	r.POST("/blog-content", authed, h.CreateBlog)
	r.GET("/blog-content", authed, staff, h.ListBlogs)
	r.GET("/published-blogs", h.ListPublishedBlogs)
	r.GET("/blogs/:id", h.GetBlog)
	r.PUT("/blogs/:id", authed, admin, h.SetBlogStatus)
	r.DELETE("/blogs/:id", authed, admin, h.DeleteBlog)

	// 支付
	r.POST("/create-payment-intent", limited, authed, h.CreatePaymentIntent)
	r.POST("/payments", authed, h.RecordPayment)
	r.GET("/payments/:email", authed, h.ListPaymentsByEmail)
	r.GET("/payments", authed, admin, h.ListPayments)

	// 统计
	r.GET("/admin-stats", authed, admin, h.Dashboard)
	r.GET("/volunteer-stats", authed, volunteer, h.Dashboard)

	r.POST("/uploads", authed, h.UploadMedia)
}
