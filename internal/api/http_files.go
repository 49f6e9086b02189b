package api

import (
	"blooddonation/internal/entity"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadMedia 上传头像或博客缩略图：multipart 的 file 字段，或 JSON 中的 data URL
func (h *HTTPHandler) UploadMedia(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.uploadMultipart(c)
		return
	}

	var req entity.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.media.UploadInline(ctx, req.Category, req.Data)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HTTPHandler) uploadMultipart(c *gin.Context) {
	category := strings.TrimSpace(c.PostForm("category"))
	fileHeader, err := c.FormFile("file")
	if err != nil {
		MissingField(c, "file")
		return
	}
	if limit := h.media.MaxBytes(); limit > 0 && fileHeader.Size > limit {
		BadRequest(c, ErrCodeInvalidRequest, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Warn("failed to open uploaded file")
		BadRequest(c, ErrCodeInvalidRequest, "unreadable file")
		return
	}
	defer file.Close()

	reader := io.Reader(file)
	if limit := h.media.MaxBytes(); limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "unreadable file")
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	resp, err := h.media.Upload(ctx, category, data)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
