package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/choosyapp/choosy-server/internal/domain"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenService_BadKey(t *testing.T) {
	if _, err := NewTokenService("too-short", time.Minute, time.Hour); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := NewTokenService(strings.Repeat("z", 64), time.Minute, time.Hour); err == nil {
		t.Error("expected error for non-hex key")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.User{ID: "user-1", Username: "alice"}
	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if !strings.HasPrefix(token, "v4.local.") {
		t.Errorf("expected v4.local token, got %s", token[:20])
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "alice" {
		t.Errorf("Username: got %q, want %q", claims.Username, "alice")
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject: got %q, want %q", claims.Subject, "user-1")
	}
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := newTestTokenService(t)

	otherKey := strings.Repeat("ff", 32)
	other, err := NewTokenService(otherKey, 15*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.VerifyAccessToken(token); err == nil {
		t.Error("token minted with a different key should not verify")
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.VerifyAccessToken(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	svc := newTestTokenService(t)
	if _, err := svc.VerifyAccessToken("v4.local.garbage"); err == nil {
		t.Error("garbage token should not verify")
	}
}

func TestRefreshTokens(t *testing.T) {
	svc := newTestTokenService(t)

	t1, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	t2, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if t1 == t2 {
		t.Error("refresh tokens should be unique")
	}

	// Hashing is deterministic and never returns the raw token.
	h1 := HashRefreshToken(t1)
	if h1 != HashRefreshToken(t1) {
		t.Error("hash should be deterministic")
	}
	if h1 == t1 {
		t.Error("hash should differ from the token")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestTokenDurations(t *testing.T) {
	svc := newTestTokenService(t)
	if svc.AccessTokenDuration() != 15*time.Minute {
		t.Errorf("AccessTokenDuration: got %v", svc.AccessTokenDuration())
	}
	if svc.RefreshTokenDuration() != 30*24*time.Hour {
		t.Errorf("RefreshTokenDuration: got %v", svc.RefreshTokenDuration())
	}
}
