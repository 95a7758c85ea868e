package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleRegistered)
	n.dispatcher.Subscribe(events.EventAdminRegistered, n.handleRegistered)
	n.dispatcher.Subscribe(events.EventRestaurantCreated, n.handleRestaurantCreated)
	n.dispatcher.Subscribe(events.EventReviewPosted, n.handleReviewPosted)
}

func (n *NotificationService) handleRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("Registered", zap.String("event_type", string(event.Type)), zap.String("subject_id", event.SubjectID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRestaurantCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RestaurantCreated", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReviewPosted(ctx context.Context, event events.Event) error {
	n.logger.Info("ReviewPosted", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	if _, ok := event.Payload.(events.RegisteredPayload); !ok {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
