package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository/repotest"
)

func seedUsers(t *testing.T, n int) *repotest.Users {
	t.Helper()
	users := repotest.NewUsers()
	for i := 1; i <= n; i++ {
		require.NoError(t, users.Create(context.Background(), &domain.User{Email: fmt.Sprintf("u%d@b.com", i)}))
	}
	return users
}

func TestUserService_List(t *testing.T) {
	svc := NewUserService(seedUsers(t, 3))

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserService_Paginate(t *testing.T) {
	svc := NewUserService(seedUsers(t, 25))
	ctx := context.Background()

	first, err := svc.Paginate(ctx, Page{})
	require.NoError(t, err)
	assert.Len(t, first, 20)
	assert.Equal(t, int64(1), first[0].ID)

	second, err := svc.Paginate(ctx, Page{Number: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, second, 10)
	assert.Equal(t, int64(11), second[0].ID)

	beyond, err := svc.Paginate(ctx, Page{Number: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: 20}, NormalizePage(0, -5))
	assert.Equal(t, 40, NormalizePage(3, 20).Offset())
}
