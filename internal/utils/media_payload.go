package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnsupportedMedia is returned when the payload is not one of the accepted image formats.
var ErrUnsupportedMedia = errors.New("unsupported media type")

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ExtensionFromMime maps an accepted image MIME type to its file extension,
// or "" when the type is not accepted.
func ExtensionFromMime(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return imageExtensions[mimeType]
}

// SplitDataURL separates "data:<mime>;base64,<payload>". Plain base64 input
// comes back with an empty MIME type.
func SplitDataURL(value string) (string, string) {
	if !strings.HasPrefix(value, "data:") {
		return "", value
	}
	value = strings.TrimPrefix(value, "data:")
	parts := strings.SplitN(value, ";base64,", 2)
	if len(parts) != 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// DecodeImagePayload decodes an inline base64 or data URL image and returns
// the bytes with the extension implied by their sniffed content.
func DecodeImagePayload(payload string) ([]byte, string, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, "", fmt.Errorf("empty media payload")
	}

	_, base64Payload := SplitDataURL(trimmed)
	base64Payload = strings.TrimSpace(base64Payload)
	if base64Payload == "" {
		return nil, "", fmt.Errorf("empty base64 payload")
	}

	data, err := base64.StdEncoding.DecodeString(base64Payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}
	ext, err := SniffImageExtension(data)
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}

// SniffImageExtension trusts the bytes, not a declared type.
func SniffImageExtension(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty media payload")
	}
	ext := ExtensionFromMime(http.DetectContentType(data))
	if ext == "" {
		return "", ErrUnsupportedMedia
	}
	return ext, nil
}
