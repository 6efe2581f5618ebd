package handlers

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/service"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

const (
	minPasswordLength = 8
	// bcrypt only reads the first 72 bytes and errors beyond that, so the
	// bound has to be enforced here where it maps to a 400.
	maxPasswordLength = 72
)

// UsersHandler exposes registration and account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if err := validateOptionalPositive("profile_id", req.ProfileID); err != nil {
		return err
	}
	if err := validateOptionalPositive("status_id", req.StatusID); err != nil {
		return err
	}

	user := &domain.User{
		Email:     req.Email,
		Password:  req.Password,
		ProfileID: req.ProfileID,
		StatusID:  req.StatusID,
	}
	created, err := h.users.Create(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(created),
	})
}

// Me handles GET /users/me, returning the account behind the bearer token.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("missing principal")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// GetByID handles GET /users/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return util.NewValidationError("invalid user id", nil)
	}

	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Lookup handles GET /users/lookup. An email query parameter wins over an id
// one; with neither the lookup fails as not found.
func (h *UsersHandler) Lookup(c *fiber.Ctx) error {
	var ref domain.UserRef
	if email := c.Query("email"); email != "" {
		ref = domain.ByEmail(email)
	} else if rawID := c.Query("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			return util.NewValidationError("invalid user id", nil)
		}
		ref = domain.ByID(id)
	}

	user, err := h.users.Get(c.UserContext(), ref)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PUT /users/:id with partial-update semantics.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return util.NewValidationError("invalid user id", nil)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email != "" {
		if err := validateEmail(req.Email); err != nil {
			return err
		}
	}
	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return err
		}
	}
	if err := validateOptionalPositive("profile_id", req.ProfileID); err != nil {
		return err
	}
	if err := validateOptionalPositive("status_id", req.StatusID); err != nil {
		return err
	}

	user := &domain.User{
		ID:        id,
		Email:     req.Email,
		Password:  req.Password,
		ProfileID: req.ProfileID,
		StatusID:  req.StatusID,
	}
	updated, err := h.users.Update(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return util.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	if len(password) > maxPasswordLength {
		return util.NewValidationError("password too long", map[string]any{"max_length": maxPasswordLength})
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return util.NewValidationError("email required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return util.NewValidationError("invalid email format", nil)
	}
	return nil
}

func validateOptionalPositive(field string, value *int64) error {
	if value != nil && *value <= 0 {
		return util.NewValidationError(field+" must be positive", nil)
	}
	return nil
}
