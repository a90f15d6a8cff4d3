package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	user := &domain.User{ID: 42, Role: domain.UserRoleBroker}

	tok, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := tm.ParseToken(tok.Value)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != domain.UserRoleBroker || claims.Subject != "42" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !tok.ExpiresAt.After(tok.IssuedAt) {
		t.Fatal("expiry must follow issue time")
	}
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	tok, _ := NewTokenManager("a", 5).GenerateToken(&domain.User{ID: 1, Role: domain.UserRoleClient})
	if _, err := NewTokenManager("b", 5).ParseToken(tok.Value); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("s", 1)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _ := tm.GenerateToken(&domain.User{ID: 1, Role: domain.UserRoleClient})

	tm.now = time.Now
	if _, err := tm.ParseToken(tok.Value); err == nil {
		t.Fatal("expected expiry error")
	}
}
