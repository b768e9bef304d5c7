package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/domain"
)

const (
	principalKey         = "auth_principal"
	defaultLookupTimeout = 2 * time.Second
)

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// TokenVerifier recovers claims from a presented token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// IdentityStore resolves a claimed identifier to a stored user.
// Implementations return pgx.ErrNoRows when no user matches.
type IdentityStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RejectionRecorder receives authorization outcomes for metrics.
type RejectionRecorder interface {
	RecordAuthRejection(reason string)
	RecordTokenFailure(kind string)
}

// GuardOptions tunes the access guard.
type GuardOptions struct {
	LookupTimeout       time.Duration
	RequireBearerScheme bool
	Logger              *zap.Logger
	Metrics             RejectionRecorder
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens        TokenVerifier
	users         IdentityStore
	lookupTimeout time.Duration
	strictScheme  bool
	logger        *zap.Logger
	metrics       RejectionRecorder
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, users IdentityStore, opts GuardOptions) *AuthMiddleware {
	m := &AuthMiddleware{
		tokens:        tokens,
		users:         users,
		lookupTimeout: opts.LookupTimeout,
		strictScheme:  opts.RequireBearerScheme,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}
	if m.lookupTimeout <= 0 {
		m.lookupTimeout = defaultLookupTimeout
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		rej := asRejection(err)
		if m.metrics != nil {
			m.metrics.RecordAuthRejection(rej.Reason.String())
		}
		return rej.DomainError()
	}

	c.Locals(principalKey, principal)
	c.SetUserContext(ContextWithUser(c.UserContext(), principal.User))
	return c.Next()
}

// Authorize runs the guard for a single Authorization header value. Every
// failure is returned as a *Rejection; a panic while authorizing is reported
// as RejectForbidden.
func (m *AuthMiddleware) Authorize(ctx context.Context, header string) (principal *Principal, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("authorization panicked", zap.Any("panic", r))
			principal = nil
			err = &Rejection{Reason: RejectForbidden, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	token, err := m.extractToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Debug("token verification failed", zap.Error(err))
		if m.metrics != nil {
			m.metrics.RecordTokenFailure(tokenFailureKind(err))
		}
		return nil, &Rejection{Reason: RejectForbidden, Cause: err}
	}

	if !claims.HasIdentity() {
		return nil, &Rejection{Reason: RejectMissingIdentity}
	}

	user, err := m.resolve(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &Principal{User: user, Claims: claims}, nil
}

func (m *AuthMiddleware) extractToken(header string) (string, error) {
	if header == "" {
		return "", &Rejection{Reason: RejectMissingCredential}
	}
	parts := strings.Split(header, " ")
	if m.strictScheme && !strings.EqualFold(parts[0], "Bearer") {
		return "", &Rejection{Reason: RejectMissingCredential, Cause: errUnsupportedScheme}
	}
	if len(parts) < 2 {
		return "", nil
	}
	return parts[1], nil
}

func (m *AuthMiddleware) resolve(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.lookupTimeout)
	defer cancel()

	user, err := m.users.GetByID(ctx, id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, &Rejection{Reason: RejectUnknownIdentity}
	case err != nil:
		m.logger.Error("identity lookup failed", zap.Int64("user_id", id), zap.Error(err))
		return nil, &Rejection{Reason: RejectInternal, Cause: err}
	case user == nil:
		return nil, &Rejection{Reason: RejectUnknownIdentity}
	}
	return user, nil
}

func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

type userContextKey struct{}

// ContextWithUser returns a copy of ctx carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user attached by the access guard.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*domain.User)
	return user, ok && user != nil
}
