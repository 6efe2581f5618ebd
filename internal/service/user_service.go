package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// UserService holds the business rules for user accounts: timestamping,
// password hashing, and lookup resolution. It is stateless across calls;
// every method is an independent transaction against the gateway.
type UserService struct {
	users      repository.UserGateway
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserGateway, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

// Create registers a new account. The creation date is stamped here, exactly
// once, and the password never reaches the gateway in plaintext. A duplicate
// email propagates as the gateway's Conflict, untouched.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.CreationDate = s.now().UTC().Format(time.RFC3339)

	hash, err := auth.HashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	user.Password = hash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, user.Email, events.UserRegisteredPayload{
		ProfileID: user.ProfileID,
		StatusID:  user.StatusID,
	}))
	return user, nil
}

// GetByID fetches a user, failing with NotFound carrying the id when absent.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

// GetByEmail fetches a user, failing with NotFound carrying the email when
// absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NewNotFound("user", map[string]any{"email": email})
	}
	return user, nil
}

// Get resolves a tagged reference: an email reference searches by email, an
// id reference by id. An empty reference fails with NotFound carrying both
// keys for diagnostics.
func (s *UserService) Get(ctx context.Context, ref domain.UserRef) (*domain.User, error) {
	switch ref.Kind() {
	case domain.RefEmail:
		return s.GetByEmail(ctx, ref.Email())
	case domain.RefID:
		return s.GetByID(ctx, ref.ID())
	default:
		return nil, util.NewNotFound("user", map[string]any{"id": ref.ID(), "email": ref.Email()})
	}
}

// Update applies a partial update. A non-empty password is hashed before it
// leaves the core; fields left unset on the input keep their stored values.
// NotFound and Conflict from the gateway propagate verbatim.
func (s *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	passwordChanged := user.Password != ""
	if passwordChanged {
		hash, err := auth.HashPassword(user.Password, s.bcryptCost)
		if err != nil {
			return nil, util.NewInternalError(err)
		}
		user.Password = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int64("user_id", updated.ID))
	s.publish(ctx, events.NewEvent(events.EventUserUpdated, updated.ID, updated.Email, events.UserUpdatedPayload{
		PasswordChanged: passwordChanged,
	}))
	return updated, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
