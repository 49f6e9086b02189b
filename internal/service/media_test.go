package service

import (
	"blooddonation/internal/storage"
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

var tinyPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestMediaUpload(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	media := NewMediaService(store, "/files", 64)
	ctx := context.Background()

	resp, err := media.UploadInline(ctx, storage.CategoryAvatar, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(tinyPNG))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(resp.URL, "/files/avatars/") || !strings.HasSuffix(resp.URL, ".png") {
		t.Fatalf("unexpected url %s", resp.URL)
	}
	again, err := media.Upload(ctx, storage.CategoryAvatar, tinyPNG)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if again.Key != resp.Key {
		t.Fatalf("expected same key, got %s and %s", resp.Key, again.Key)
	}

	_, err = media.Upload(ctx, "documents", tinyPNG)
	expectKind(t, err, KindInvalid)
	_, err = media.Upload(ctx, storage.CategoryThumbnail, []byte("plain text"))
	expectKind(t, err, KindInvalid)
	_, err = media.Upload(ctx, storage.CategoryThumbnail, append(tinyPNG, make([]byte, 64)...))
	expectKind(t, err, KindInvalid)

	var unconfigured *MediaService
	_, err = unconfigured.Upload(ctx, storage.CategoryAvatar, tinyPNG)
	expectKind(t, err, KindStore)
}
