package middleware

import (
	"context"
	"strings"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	RoleKey             = "role"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token and stores the caller's id and role in the context.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}
		if claims.TokenType != "access" {
			return unauthorized(c, "INVALID_TOKEN_TYPE", "Access token required")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, claims.Role)
		return c.Next()
	}
}

// RequireRole must run after Protected. It rejects callers whose role is not
// one of roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		for _, r := range roles {
			if role == string(r) {
				return c.Next()
			}
		}
		logger.Get().Warn("Role check failed",
			zap.String("userID", CurrentUserID(c)),
			zap.String("role", role),
			zap.String("path", c.Path()))
		return domain.NewForbiddenError("Insufficient role")
	}
}

// CurrentUserID returns the id stored by Protected, or "" on public routes.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
