package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roteiro/core/internal/application/services"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// UserHandler handles the legacy /usuarios and /favoritos routes.
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles GET /usuarios with an optional exact-login filter.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var filter ports.UserFilter
	if login := c.QueryParam("login"); login != "" {
		filter.Login = &login
	}

	users, err := h.userService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List users failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /usuarios/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgUserNotFound)
		}
		h.logger.Error("Get user failed", "error", err, "user_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get user")
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /usuarios.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req ports.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrLoginTaken) {
			return echo.NewHTTPError(http.StatusConflict, MsgLoginTaken)
		}
		h.logger.Error("Create user failed", "error", err, "login", req.Login)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// PatchUser handles PATCH /usuarios/:id with a shallow field merge.
func (h *UserHandler) PatchUser(c echo.Context) error {
	var req ports.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.PatchUser(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgUserNotFound)
		}
		h.logger.Error("Patch user failed", "error", err, "user_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to patch user")
	}

	return c.JSON(http.StatusOK, user)
}

// GetFavorites handles GET /favoritos/:userId.
func (h *UserHandler) GetFavorites(c echo.Context) error {
	favorites, err := h.userService.GetFavorites(c.Request().Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgUserNotFound)
		}
		h.logger.Error("Get favorites failed", "error", err, "user_id", c.Param("userId"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get favorites")
	}

	return c.JSON(http.StatusOK, favorites)
}
