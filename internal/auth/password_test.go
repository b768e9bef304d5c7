package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	assert.NoError(t, ComparePassword(hash, "p1"))
	assert.ErrorIs(t, ComparePassword(hash, "p2"), ErrPasswordMismatch)
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("p1", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestComparePassword_NotAHash(t *testing.T) {
	err := ComparePassword("plaintext", "plaintext")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
