package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/domain"
	apperrors "github.com/spec-kit/movie-service/pkg/util/errorutil"
)

func TestRoleSet(t *testing.T) {
	assert.True(t, NewRoleSet().Admits("anything"))
	assert.True(t, NewRoleSet(" ", "").Admits("anything"))

	set := NewRoleSet("Admin", " editor ")
	assert.True(t, set.Admits("admin"))
	assert.True(t, set.Admits("EDITOR"))
	assert.False(t, set.Admits("Estimator"))
	assert.False(t, set.Admits(""))
}

func TestRequireRole(t *testing.T) {
	newApp := func(user *domain.User) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		}})
		app.Get("/", func(c *fiber.Ctx) error {
			if user != nil {
				c.Locals(principalKey, &Principal{User: user})
			}
			return c.Next()
		}, RequireRole("Admin"), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusNoContent)
		})
		return app
	}

	cases := map[string]struct {
		user   *domain.User
		status int
	}{
		"admin":      {&domain.User{ID: 1, Role: "admin"}, http.StatusNoContent},
		"other role": {&domain.User{ID: 2, Role: "Estimator"}, http.StatusForbidden},
		"unguarded":  {nil, http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := newApp(tc.user).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
