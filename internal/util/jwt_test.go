package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Minute)

	userID := uuid.New()
	token, expiresAt, err := manager.Generate("opaque-session-token", userID)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.SessionToken != "opaque-session-token" {
		t.Fatalf("expected session token claim, got %q", claims.SessionToken)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Millisecond)
	token, _, err := manager.Generate("tok", uuid.New())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	a := NewJWTManager("secret-a", time.Minute)
	b := NewJWTManager("secret-b", time.Minute)

	token, _, err := a.Generate("tok", uuid.New())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatalf("expected parse error for token signed with another secret")
	}
}
