package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vraxaserver/eygarpayment/internal/domain/entity"
)

// contextKey is used for storing the caller in context
type contextKey string

const callerContextKey contextKey = "authenticated_caller"

// JWTConfig holds the configuration for the JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware creates a middleware that validates HMAC-signed bearer
// tokens and stores the resulting caller identity in the request context.
// Rejections use the same error envelope as the payment handlers.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip JWT validation for certain paths
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			// Extract token from Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return unauthenticated(c, "Authorization header required")
			}

			// Check Bearer prefix
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("invalid authorization header format",
					zap.String("path", path))
				return unauthenticated(c, "Invalid authorization header format. Expected: Bearer <token>")
			}

			// Parse and validate JWT token
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Verify signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("jwt validation failed",
					zap.Error(err),
					zap.String("path", path))
				return unauthenticated(c, "Invalid or expired token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				config.Logger.Warn("invalid jwt claims",
					zap.String("path", path))
				return unauthenticated(c, "Invalid token claims")
			}

			userID, ok := resolveUserID(claims)
			if !ok {
				config.Logger.Warn("token carries no usable user id",
					zap.String("path", path))
				return unauthenticated(c, "Token does not identify a user")
			}

			caller := entity.Caller{
				UserID:  userID,
				IsAdmin: resolveIsAdmin(claims),
			}

			// Store caller in request context
			ctx := context.WithValue(c.Request().Context(), callerContextKey, caller)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user_id", userID)

			config.Logger.Debug("caller authenticated",
				zap.Int64("user_id", caller.UserID),
				zap.Bool("is_admin", caller.IsAdmin),
				zap.String("path", path))

			return next(c)
		}
	}
}

// resolveUserID reads the caller's id from the user_id claim, falling back
// to a numeric sub claim. Only positive ids are usable.
func resolveUserID(claims jwt.MapClaims) (int64, bool) {
	for _, name := range []string{"user_id", "sub"} {
		value, exists := claims[name]
		if !exists {
			continue
		}
		switch id := value.(type) {
		case float64:
			if id > 0 {
				return int64(id), true
			}
		case string:
			parsed, err := strconv.ParseInt(id, 10, 64)
			if err == nil && parsed > 0 {
				return parsed, true
			}
		}
	}
	return 0, false
}

// resolveIsAdmin accepts either an is_admin boolean claim or role=admin.
func resolveIsAdmin(claims jwt.MapClaims) bool {
	if isAdmin, ok := claims["is_admin"].(bool); ok && isAdmin {
		return true
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

func unauthenticated(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error_code": "UNAUTHENTICATED",
		"message":    message,
	})
}

// GetCaller extracts the authenticated caller from the request context.
func GetCaller(c echo.Context) (entity.Caller, error) {
	caller, ok := c.Request().Context().Value(callerContextKey).(entity.Caller)
	if !ok {
		return entity.Caller{}, fmt.Errorf("no authenticated caller found in context")
	}
	return caller, nil
}
