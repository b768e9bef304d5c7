package domain

import "time"

// Movie is a catalogue entry managed through the protected API.
type Movie struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Genres    string    `json:"genres"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
