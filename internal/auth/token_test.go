package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:             "test-secret",
		Algorithm:             "HS256",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4,
	}
}

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testAuthConfig())
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	return tm
}

func TestTokenManager_SignVerifyClaims(t *testing.T) {
	tm := newTestManager(t)

	signed, err := tm.Sign(map[string]any{"sub": "a@b.com", "scope": "users"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := tm.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["sub"] != "a@b.com" {
		t.Fatalf("expected sub claim, got %v", claims["sub"])
	}
	if claims["scope"] != "users" {
		t.Fatalf("expected caller claim to survive, got %v", claims["scope"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected computed exp claim")
	}
}

func TestTokenManager_Issue(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatalf("expected non-empty access token")
	}
	if token.TokenType != domain.TokenTypeBearer {
		t.Fatalf("expected bearer token type, got %q", token.TokenType)
	}

	claims, err := tm.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	sub, err := Subject(claims)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if sub != "a@b.com" {
		t.Fatalf("expected subject a@b.com, got %q", sub)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := newTestManager(t)

	issued := time.Now()
	tm.now = func() time.Time { return issued }
	signed, err := tm.Sign(map[string]any{"sub": "a@b.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := tm.Verify(signed); !util.IsExpiredToken(err) {
		t.Fatalf("expected expired-token error, got %v", err)
	}
}

func TestTokenManager_InvalidTokens(t *testing.T) {
	tm := newTestManager(t)

	if _, err := tm.Verify("not.a.token"); !util.IsInvalidToken(err) {
		t.Fatalf("expected invalid-token error for garbage, got %v", err)
	}

	other, err := NewTokenManager(config.AuthConfig{
		SecretKey:             "different-secret",
		Algorithm:             "HS256",
		AccessTokenTTLMinutes: 30,
	})
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	signed, err := other.Sign(map[string]any{"sub": "a@b.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.Verify(signed); !util.IsInvalidToken(err) {
		t.Fatalf("expected invalid-token error for wrong signature, got %v", err)
	}
}

func TestTokenManager_AlgorithmMismatchRejected(t *testing.T) {
	tm := newTestManager(t)

	hs384, err := NewTokenManager(config.AuthConfig{
		SecretKey:             "test-secret",
		Algorithm:             "HS384",
		AccessTokenTTLMinutes: 30,
	})
	if err != nil {
		t.Fatalf("new HS384 manager: %v", err)
	}
	signed, err := hs384.Sign(map[string]any{"sub": "a@b.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.Verify(signed); !util.IsInvalidToken(err) {
		t.Fatalf("expected invalid-token error for algorithm mismatch, got %v", err)
	}
}

func TestNewTokenManager_RejectsBadConfig(t *testing.T) {
	if _, err := NewTokenManager(config.AuthConfig{SecretKey: "s", Algorithm: "RS256"}); err == nil {
		t.Fatalf("expected non-HMAC algorithm to be rejected")
	}
	if _, err := NewTokenManager(config.AuthConfig{SecretKey: "s", Algorithm: "nope"}); err == nil {
		t.Fatalf("expected unknown algorithm to be rejected")
	}
	if _, err := NewTokenManager(config.AuthConfig{SecretKey: "", Algorithm: "HS256"}); err == nil {
		t.Fatalf("expected empty secret to be rejected")
	}
}
