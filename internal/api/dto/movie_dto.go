package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// MovieRequest payload for creating or replacing a movie.
type MovieRequest struct {
	Title  string `json:"title"`
	Genres string `json:"genres"`
	Year   int    `json:"year"`
}

// Validate runs validation rules.
func (r MovieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Genres, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Year, validation.Required, validation.Min(1870), validation.Max(3000)),
	)
}
