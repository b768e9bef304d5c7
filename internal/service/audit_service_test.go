package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/events"
)

type capturePublisher struct {
	sent []events.Event
	err  error
}

func (p *capturePublisher) Send(_ context.Context, e events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, e)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func TestAuditService_ForwardsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &capturePublisher{}
	NewAuditService(dispatcher, publisher, nil).RegisterHandlers()

	ctx := context.Background()
	for _, et := range []events.EventType{
		events.EventUserRegistered,
		events.EventMovieCreated,
		events.EventMovieUpdated,
		events.EventMovieDeleted,
	} {
		require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(et, "movie:1", events.ActorFromUserID(2), nil)))
	}
	assert.Len(t, publisher.sent, 4)
}

func TestAuditService_ReportsPublisherFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	boom := errors.New("broker down")
	NewAuditService(dispatcher, &capturePublisher{err: boom}, nil).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventMovieCreated, "movie:1", events.Actor{}, nil))
	assert.ErrorIs(t, err, boom)
}

func TestAuditService_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { NewAuditService(nil, nil, nil).RegisterHandlers() })
}
