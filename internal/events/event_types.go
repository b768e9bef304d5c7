package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventMovieCreated   EventType = "movie_created"
	EventMovieUpdated   EventType = "movie_updated"
	EventMovieDeleted   EventType = "movie_deleted"
)

// Actor identifies the user that caused an event, when known.
type Actor struct {
	UserID *int64 `json:"user_id,omitempty"`
}

// ActorFromUserID returns an actor for an authenticated user id.
func ActorFromUserID(id int64) Actor {
	return Actor{UserID: &id}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, subject string, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// MoviePayload is attached to movie lifecycle events.
type MoviePayload struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title,omitempty"`
	Genres  string `json:"genres,omitempty"`
	Year    int    `json:"year,omitempty"`
}
