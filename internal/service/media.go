package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/storage"
	"blooddonation/internal/utils"
	"context"
	"errors"
	"fmt"
)

// MediaService stores avatars and blog thumbnails.
type MediaService struct {
	store      storage.Storage
	publicBase string
	maxBytes   int64
}

func NewMediaService(store storage.Storage, publicBase string, maxBytes int64) *MediaService {
	return &MediaService{store: store, publicBase: publicBase, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates an image and saves it under category. Identical content
// resolves to the same key, so repeated uploads are free.
func (s *MediaService) Upload(ctx context.Context, category string, data []byte) (*entity.UploadResponse, error) {
	if s == nil || s.store == nil {
		return nil, Storage("media storage is not configured", nil)
	}
	if !storage.ValidCategory(category) {
		return nil, invalid("", "unknown upload category")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, invalid("", fmt.Sprintf("upload exceeds %d bytes", s.maxBytes))
	}
	ext, err := utils.SniffImageExtension(data)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedMedia) {
			return nil, invalid("", "only png, jpeg, gif and webp images are accepted")
		}
		return nil, invalid("", err.Error())
	}

	key, err := s.store.Save(ctx, data, storage.SaveOptions{
		Category:     category,
		Extension:    ext,
		SkipIfExists: true,
	})
	if err != nil {
		return nil, Storage("save media", err)
	}
	return &entity.UploadResponse{Key: key, URL: storage.PublicURL(s.publicBase, key)}, nil
}

// UploadInline decodes a data URL or base64 payload and stores it.
func (s *MediaService) UploadInline(ctx context.Context, category, payload string) (*entity.UploadResponse, error) {
	data, _, err := utils.DecodeImagePayload(payload)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedMedia) {
			return nil, invalid("", "only png, jpeg, gif and webp images are accepted")
		}
		return nil, invalid("", err.Error())
	}
	return s.Upload(ctx, category, data)
}
