package handler

import (
	"context"
	"time"

	"codezetta/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sqlx.DB. Other checks are wrapped in PingFunc.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain ping function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler checks each named dependency on every request.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Services: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check.PingContext(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("service", name), zap.Error(err))
			resp.Services[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
