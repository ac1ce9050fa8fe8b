package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cinebook/internal/config"
	"cinebook/internal/model"
	"cinebook/internal/repository"
	"cinebook/internal/utils"
)

// AdminUserHandler serves the admin user-management endpoints.
type AdminUserHandler struct {
	users *repository.UserRepo
	cfg   config.Config
}

// NewAdminUserHandler wires the admin user endpoints.
func NewAdminUserHandler(users *repository.UserRepo, cfg config.Config) *AdminUserHandler {
	return &AdminUserHandler{users: users, cfg: cfg}
}

// List returns all users.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list users"})
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

type adminUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password"` // optional; resets when provided
}

// Update rewrites a user's profile, role and active flag, optionally
// resetting the password.
func (h *AdminUserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req adminUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email is required"})
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleCustomer {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be ADMIN or CUSTOMER"})
	}

	u := model.User{
		ID:       id,
		Email:    req.Email,
		FullName: strings.TrimSpace(req.FullName),
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
		}
		hash, err := utils.HashPassword(req.Password, h.cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
		}
		u.PasswordHash = hash
	}

	if err := h.users.Update(c.Request().Context(), &u); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update user"})
	}
	return c.JSON(http.StatusOK, toUserResponse(&u))
}

// Delete removes a user without bookings.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "user has bookings; deactivate instead"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete user"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
