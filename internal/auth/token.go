package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// TokenManager issues and validates signed bearer tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager from auth configuration. Only HMAC
// signing methods are accepted; an unknown or non-HMAC algorithm is a
// construction error rather than a latent verification hole.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	return &TokenManager{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    cfg.AccessTokenTTL(),
		now:    time.Now,
	}, nil
}

// Sign merges the caller's claims with a computed expiry and returns the
// encoded token. The input map is not mutated.
func (tm *TokenManager) Sign(claims map[string]any) (string, error) {
	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = jwt.NewNumericDate(tm.now().Add(tm.ttl))

	token := jwt.NewWithClaims(tm.method, payload)
	return token.SignedString(tm.secret)
}

// Verify decodes the token and validates signature and expiry. An expired
// token and any other structural failure map to distinct error kinds.
func (tm *TokenManager) Verify(tokenStr string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != tm.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, util.NewExpiredToken()
		}
		return nil, util.NewInvalidToken()
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, util.NewInvalidToken()
	}
	return claims, nil
}

// Issue signs an access token for the given subject email and wraps it in
// the bearer envelope.
func (tm *TokenManager) Issue(email string) (domain.Token, error) {
	signed, err := tm.Sign(map[string]any{"sub": email})
	if err != nil {
		return domain.Token{}, err
	}
	return domain.NewBearerToken(signed), nil
}

// Subject extracts the "sub" claim from verified claims.
func Subject(claims jwt.MapClaims) (string, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", util.NewInvalidToken()
	}
	return sub, nil
}
