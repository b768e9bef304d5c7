package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans events out to in-process subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// InMemoryDispatcher delivers events synchronously in subscription order.
type InMemoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
	logger   *zap.Logger
}

// NewInMemoryDispatcher creates a dispatcher. Handler panics are logged
// through logger when given.
func NewInMemoryDispatcher(logger ...*zap.Logger) *InMemoryDispatcher {
	d := &InMemoryDispatcher{
		handlers: make(map[EventType][]EventHandler),
		logger:   zap.NewNop(),
	}
	if len(logger) > 0 && logger[0] != nil {
		d.logger = logger[0]
	}
	return d
}

// Publish runs every handler for the event type, even after a failure, and
// returns the joined errors. A panicking handler counts as a failure.
func (d *InMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := d.handlers[event.Type]
	handlers := make([]EventHandler, len(subscribed))
	copy(handlers, subscribed)
	d.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := d.invoke(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *InMemoryDispatcher) invoke(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked", zap.String("type", string(event.Type)), zap.Any("panic", r))
			err = fmt.Errorf("handler for %s panicked: %v", event.Type, r)
		}
	}()
	return handler(ctx, event)
}

// Subscribe registers a handler for the given event type.
func (d *InMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.mu.Unlock()
}
