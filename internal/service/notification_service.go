package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
)

// NotificationService reacts to account lifecycle events. Delivery is
// stubbed: events are logged where a mail or webhook integration would hook
// in.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handleUserUpdated)
	n.dispatcher.Subscribe(events.EventUserAuthenticated, n.handleUserAuthenticated)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("welcome email queued",
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
	)
	return nil
}

func (n *NotificationService) handleUserUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("profile change recorded",
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (n *NotificationService) handleUserAuthenticated(_ context.Context, event events.Event) error {
	n.logger.Debug("login recorded",
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
	)
	return nil
}
