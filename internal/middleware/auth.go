package middleware

import (
	"net/http"
	"strings"

	"github.com/heriaond/healthy-lifestyle-tips/pkg/jwtutil"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// RequireAuth validates the Bearer JWT from the Authorization header
// and stores the caller's identity in the context.
func RequireAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			claims, ok, err := parseBearer(c, jwtUtil)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			if !ok {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			c.Set(userIDKey, claims.UserID)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

// OptionalAuth resolves the caller's identity when an Authorization
// header is present. A missing header means an anonymous request; a
// header that fails validation is still rejected rather than silently
// downgraded.
func OptionalAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok, err := parseBearer(c, jwtUtil)
			if err != nil {
				logger.FromContext(c).Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			if ok {
				c.Set(userIDKey, claims.UserID)
				c.Set("email", claims.Email)
			}
			return next(c)
		}
	}
}

// parseBearer extracts and validates the Bearer token. ok is false when
// no Authorization header is present at all.
func parseBearer(c echo.Context, jwtUtil *jwtutil.JWTUtil) (*jwtutil.UserClaims, bool, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, false, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, true, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}

	claims, err := jwtUtil.ValidateToken(parts[1])
	if err != nil {
		return nil, true, err
	}
	return claims, true, nil
}

// ActingUserID returns the authenticated caller's id, or nil for an
// anonymous request.
func ActingUserID(c echo.Context) *uint {
	id, ok := c.Get(userIDKey).(uint)
	if !ok {
		return nil
	}
	return &id
}
