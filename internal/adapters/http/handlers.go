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

// User-facing messages kept in the legacy wire format.
const (
	MsgUserNotFound       = "Usuário não encontrado"
	MsgItemNotFound       = "Item não encontrado"
	MsgLoginTaken         = "Usuário já existe"
	MsgInvalidCredentials = "Usuário ou senha inválidos"
)

// MessageResponse is a generic message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrLoginTaken) {
			return echo.NewHTTPError(http.StatusConflict, MsgLoginTaken)
		}
		h.logger.Error("Registration failed", "error", err, "login", req.Login)
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
		}
		h.logger.Error("Login failed", "error", err, "login", req.Login)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, response)
}
