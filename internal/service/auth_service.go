package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	users      repository.UserGateway
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserGateway, tokens *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Authenticate checks email and password and returns a signed token. A
// missing account and a wrong password fail with the same InvalidCredentials
// so callers cannot enumerate registered emails.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.Token{}, err
	}
	if user == nil || !auth.VerifyPassword(password, user.Password) {
		s.logger.Warn("authentication failed", zap.String("email", email))
		return domain.Token{}, util.NewInvalidCredentials()
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return domain.Token{}, util.NewInternalError(err)
	}

	s.logger.Info("user authenticated", zap.Int64("user_id", user.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserAuthenticated, user.ID, user.Email, nil))
	}
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
