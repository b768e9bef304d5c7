package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryDispatcher_PublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventMovieCreated, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventMovieCreated, "movie:1", Actor{}, nil)))
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventMovieDeleted, "movie:1", Actor{}, nil)))
	assert.Equal(t, []EventType{EventMovieCreated}, got)
}

func TestInMemoryDispatcher_RunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error { calls++; return boom })
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error { calls++; return nil })

	err := d.Publish(context.Background(), NewEvent(EventUserRegistered, "user:1", Actor{}, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestInMemoryDispatcher_HandlerPanicIsAnError(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	after := false
	d.Subscribe(EventMovieCreated, func(context.Context, Event) error { panic("nil map") })
	d.Subscribe(EventMovieCreated, func(context.Context, Event) error { after = true; return nil })
	d.Subscribe(EventMovieCreated, nil)

	err := d.Publish(context.Background(), NewEvent(EventMovieCreated, "movie:1", Actor{}, nil))
	assert.ErrorContains(t, err, "panicked")
	assert.True(t, after)
}

func TestKafkaPublisher_Send(t *testing.T) {
	writer := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(writer, nil)

	event := NewEvent(EventMovieUpdated, "movie:6", ActorFromUserID(3), MoviePayload{MovieID: 6, Title: "Heat"})
	require.NoError(t, p.Send(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "movie:6", string(msg.Key))
	assert.Equal(t, "movie_updated", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded["id"])
	assert.Equal(t, float64(3), decoded["actor"].(map[string]any)["user_id"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_SendError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	p := NewKafkaPublisherWithWriter(writer, nil)

	err := p.Send(context.Background(), NewEvent(EventMovieDeleted, "movie:1", Actor{}, nil))
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.Send(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
