package dto

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/domain"
)

func TestUserRegisterRequest_Validate(t *testing.T) {
	assert.NoError(t, UserRegisterRequest{Email: "a@b.com", Password: "p1"}.Validate())

	err := UserRegisterRequest{Email: "not-an-email"}.Validate()
	var fieldErrs validation.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "password")
}

func TestUserLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, UserLoginRequest{Email: "a@b.com", Password: "p1"}.Validate())
	assert.Error(t, UserLoginRequest{Email: "a@b.com"}.Validate())
}

func TestMovieRequest_Validate(t *testing.T) {
	assert.NoError(t, MovieRequest{Title: "Reckless", Genres: "Comedy", Year: 2001}.Validate())

	err := MovieRequest{Title: "", Genres: "Comedy", Year: 12}.Validate()
	var fieldErrs validation.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "title")
	assert.Contains(t, fieldErrs, "year")
}

func TestNewUserResponses_OmitsPassword(t *testing.T) {
	users := []domain.User{{ID: 1, Email: "a@b.com", PasswordHash: "hash", CreatedAt: time.Unix(0, 0)}}
	out := NewUserResponses(users)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, "a@b.com", out[0].Email)
}
