package domain

// TokenTypeBearer is the only token type the service issues.
const TokenTypeBearer = "bearer"

// Token is an issued access credential. Ephemeral, never persisted; the
// embedded expiry claim is the only invalidation mechanism.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewBearerToken wraps a signed access token string.
func NewBearerToken(accessToken string) Token {
	return Token{AccessToken: accessToken, TokenType: TokenTypeBearer}
}
