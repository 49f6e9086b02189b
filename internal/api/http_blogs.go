package api

import (
	"blooddonation/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) CreateBlog(c *gin.Context) {
	var req entity.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	blog, err := h.blogs.Create(ctx, CurrentEmail(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// ListBlogs 后台列表，包含草稿
func (h *HTTPHandler) ListBlogs(c *gin.Context) {
	var query entity.BlogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.blogs.List(ctx, query)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) ListPublishedBlogs(c *gin.Context) {
	params, ok := bindPage(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.blogs.ListPublished(ctx, params)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBlog 草稿对外不可见
func (h *HTTPHandler) GetBlog(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	blog, err := h.blogs.GetPublished(ctx, id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *HTTPHandler) SetBlogStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req entity.BlogStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	blog, err := h.blogs.SetStatus(ctx, id, req.Status)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *HTTPHandler) DeleteBlog(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	if err := h.blogs.Delete(ctx, id); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
