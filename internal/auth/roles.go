package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/movie-service/pkg/util/errorutil"
)

// RoleSet is a case-insensitive set of role names. An empty set admits
// every role.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from role names.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if role = strings.TrimSpace(role); role != "" {
			set[strings.ToLower(role)] = struct{}{}
		}
	}
	return set
}

// Admits reports whether role belongs to the set.
func (s RoleSet) Admits(role string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[strings.ToLower(role)]
	return ok
}

// RequireRole must run after the access guard. It rejects principals whose
// role is not in allowed.
func RequireRole(allowed ...string) fiber.Handler {
	roles := NewRoleSet(allowed...)
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if !roles.Admits(principal.User.Role) {
			return apperrors.NewForbidden("Forbidden: insufficient role")
		}
		return c.Next()
	}
}
