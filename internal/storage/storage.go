package storage

import (
	"blooddonation/internal/config"
	"context"
	"fmt"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

const (
	// CategoryAvatar 用户头像
	CategoryAvatar = "avatars"
	// CategoryThumbnail 博客缩略图
	CategoryThumbnail = "thumbnails"
)

// ValidCategory reports whether category is one of the media buckets clients may upload to.
func ValidCategory(category string) bool {
	return category == CategoryAvatar || category == CategoryThumbnail
}

// SaveOptions 控制存储后端如何持久化文件。
//
// BaseName 为空时由内容摘要生成，相同内容会落到同一个键上；
// SkipIfExists 为真时已存在的对象不会被重新上传。
type SaveOptions struct {
	Category     string
	Extension    string
	BaseName     string
	SkipIfExists bool
}

// Storage 持久化二进制数据并返回对象键（相对路径）。
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider 由可以直接通过 HTTP 提供文件的本地存储实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// PublicURL joins the configured public base with an object key.
func PublicURL(base, key string) string {
	key = strings.TrimLeft(key, "/")
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}
