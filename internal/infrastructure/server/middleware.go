package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roteiro/core/internal/application/services"
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyLogin  = "user_login"
	ContextKeyAdmin  = "user_admin"
)

// authMiddleware validates JWT bearer tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.Warn("Invalid token", "error", err, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyLogin, claims.Login)
			c.Set(ContextKeyAdmin, claims.Admin)

			return next(c)
		}
	}
}

// requireAdmin rejects requests whose token does not carry the admin flag.
func (s *Server) requireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, ok := c.Get(ContextKeyAdmin).(bool)
			if !ok || !admin {
				s.logger.Warn("Admin-only endpoint denied",
					"user_id", c.Get(ContextKeyUserID),
					"ip", c.RealIP(),
					"endpoint", c.Request().URL.Path,
				)
				return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
			}
			return next(c)
		}
	}
}
