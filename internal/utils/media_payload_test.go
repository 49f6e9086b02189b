package utils

import (
	"encoding/base64"
	"errors"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDecodeImagePayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	tests := []struct {
		name    string
		payload string
		wantExt string
		wantErr bool
	}{
		{name: "data url", payload: "data:image/png;base64," + encoded, wantExt: "png"},
		{name: "plain base64", payload: encoded, wantExt: "png"},
		{name: "declared type ignored", payload: "data:image/gif;base64," + encoded, wantExt: "png"},
		{name: "empty", payload: "  ", wantErr: true},
		{name: "missing payload", payload: "data:image/png;base64,", wantErr: true},
		{name: "bad base64", payload: "data:image/png;base64,@@@", wantErr: true},
		{name: "not an image", payload: base64.StdEncoding.EncodeToString([]byte("hello world")), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ext, err := DecodeImagePayload(tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ext != tt.wantExt {
				t.Fatalf("expected ext %s, got %s", tt.wantExt, ext)
			}
			if string(data) != string(pngHeader) {
				t.Fatal("decoded bytes mismatch")
			}
		})
	}
}

func TestSniffImageExtensionRejectsText(t *testing.T) {
	if _, err := SniffImageExtension([]byte("<html></html>")); !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}

func TestExtensionFromMime(t *testing.T) {
	tests := map[string]string{
		"image/png":                "png",
		"IMAGE/JPEG":               "jpg",
		"image/webp; charset=utf8": "webp",
		"text/plain":               "",
		"":                         "",
	}
	for input, want := range tests {
		if got := ExtensionFromMime(input); got != want {
			t.Fatalf("ExtensionFromMime(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSplitDataURL(t *testing.T) {
	mimeType, payload := SplitDataURL("data:image/png;base64,AAAA")
	if mimeType != "image/png" || payload != "AAAA" {
		t.Fatalf("unexpected split %q %q", mimeType, payload)
	}
	mimeType, payload = SplitDataURL("AAAA")
	if mimeType != "" || payload != "AAAA" {
		t.Fatalf("unexpected split for raw payload %q %q", mimeType, payload)
	}
}
