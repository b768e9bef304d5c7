package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/events"
)

// AuditService records domain events and forwards them to an external sink.
type AuditService struct {
	dispatcher events.Dispatcher
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, publisher events.Publisher, logger *zap.Logger) *AuditService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventMovieCreated, a.handleMovieChanged)
	a.dispatcher.Subscribe(events.EventMovieUpdated, a.handleMovieChanged)
	a.dispatcher.Subscribe(events.EventMovieDeleted, a.handleMovieChanged)
}

func (a *AuditService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("subject", event.Subject), zap.String("event_id", event.ID))
	return a.forward(ctx, event)
}

func (a *AuditService) handleMovieChanged(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload),
	}
	if event.Actor.UserID != nil {
		fields = append(fields, zap.Int64("actor_id", *event.Actor.UserID))
	}
	a.logger.Info("MovieChanged", fields...)
	return a.forward(ctx, event)
}

func (a *AuditService) forward(ctx context.Context, event events.Event) error {
	if err := a.publisher.Send(ctx, event); err != nil {
		a.logger.Warn("forward event failed", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	return nil
}
