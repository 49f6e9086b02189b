package auth

import (
	"strings"
	"testing"
	"time"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	identity := Identity{Email: "a@x.com", Name: "Alice", Photo: "https://img/a.png"}
	token, expiresAt, err := mgr.GenerateToken(identity)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Identity != identity {
		t.Fatalf("expected identity %+v, got %+v", identity, claims.Identity)
	}
}

func TestGenerateTokenNormalisesEmail(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", 0)
	token, _, err := mgr.GenerateToken(Identity{Email: "  Bob@X.com "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Email != "bob@x.com" {
		t.Fatalf("expected normalised email, got %q", claims.Email)
	}
}

func TestDefaultExpiryIs365Hours(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", 0)
	if mgr.Expiry() != 365*time.Hour {
		t.Fatalf("expected 365h expiry, got %s", mgr.Expiry())
	}
}

func TestGenerateTokenRequiresEmail(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", time.Hour)
	if _, _, err := mgr.GenerateToken(Identity{Name: "nobody"}); err != ErrMissingEmail {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}

func TestParseTokenRejectsInvalidTokens(t *testing.T) {
	mgr, _ := NewManager("test-secret", "issuer", time.Hour)
	other, _ := NewManager("other-secret", "issuer", time.Hour)

	foreign, _, err := other.GenerateToken(Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expiredMgr, _ := NewManager("test-secret", "issuer", time.Hour)
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredMgr.GenerateToken(Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong signature", token: foreign},
		{name: "expired", token: expired},
		{name: "tampered", token: strings.TrimSuffix(foreign, foreign[len(foreign)-2:]) + "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mgr.ParseToken(tt.token); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
