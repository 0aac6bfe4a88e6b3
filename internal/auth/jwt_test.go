package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "dupe", 15*time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	got, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != userID {
		t.Errorf("user ID: got %s, want %s", got, userID)
	}
}

func TestValidateAccessToken_Empty(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "dupe", 15*time.Minute)
	if _, err := m.ValidateAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager(testSecret, "dupe", 15*time.Minute)
	m2 := NewJWTManager("another-secret-at-least-32-chars-ok", "dupe", 15*time.Minute)

	token, err := m1.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m2.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager(testSecret, "other-app", 15*time.Minute)
	m2 := NewJWTManager(testSecret, "dupe", 15*time.Minute)

	token, err := m1.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m2.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "dupe", -1*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "dupe", 15*time.Minute)

	raw, hash, err := m.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("empty raw or hash")
	}
	if strings.Contains(raw, "=") {
		t.Error("raw token must be unpadded base64url")
	}
	if HashToken(raw) != hash {
		t.Error("hash must match HashToken(raw)")
	}

	raw2, hash2, err := m.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if raw == raw2 || hash == hash2 {
		t.Error("consecutive tokens must differ")
	}
}
