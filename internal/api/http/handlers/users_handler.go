package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/repository"
	"github.com/spec-kit/movie-service/internal/service"
	apperrors "github.com/spec-kit/movie-service/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.FromValidation(err)
	}

	_, err := h.auth.RegisterUser(c.UserContext(), req.Email, req.Gender, req.Password, req.Role)
	if errors.Is(err, repository.ErrEmailTaken) {
		return apperrors.NewConflict("email already registered", nil)
	}
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.Success("Account registered, kindly log in with the new account", nil))
}

// Login handles POST /users/login. The token is returned in the body and
// in the Authorization response header.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.FromValidation(err)
	}

	_, token, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return apperrors.NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+token.Value)
	return c.JSON(dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

// Verify handles GET /users/verify/:token. Reaching it means the guard
// accepted the request credential.
func (h *UsersHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(dto.Success("Verification successful. You can use full features!", nil))
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Paginate handles GET /users/paginate.
func (h *UsersHandler) Paginate(c *fiber.Ctx) error {
	page := service.NormalizePage(c.QueryInt("page"), c.QueryInt("limit"))
	users, err := h.users.Paginate(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewUserResponses(users),
		"meta": fiber.Map{"page": page.Number, "limit": page.Limit},
	})
}
