package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, expiresAt, err := tm.GenerateToken(42, true, "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("unexpected expiry %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("AccountID = %d, want 42", claims.AccountID)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin lost")
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", claims.SessionID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a").GenerateToken(1, false, "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenManager("secret-b").ParseToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, _, err := tm.GenerateToken(1, false, "sess-1", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Error("malformed token accepted")
	}
}
