package handler

import (
	"codezetta/internal/domain"
	"codezetta/internal/logger"
	"codezetta/internal/middleware"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// bindJSON parses the request body into out and validates it.
func bindJSON(c *fiber.Ctx, v *validation.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.NewBadRequestError("Invalid request body")
	}
	return v.Struct(out)
}

// requireUser returns the caller id set by middleware.Protected.
func requireUser(c *fiber.Ctx) (string, error) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
		return "", domain.NewUnauthorizedError("User ID not found in context")
	}
	return userID, nil
}
