package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/delivery/http/response"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the user the agent acts for from a bearer access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the access token and stores its user on the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, claims.UserID)
		if logger := deliverycontext.GetLogger(c.Request().Context()); logger != nil {
			ctx := deliverycontext.WithLogger(c.Request().Context(), logger.With(slog.String("user_id", claims.UserID)))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}
