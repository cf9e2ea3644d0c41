package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studybuddy/internal/domain"
	"studybuddy/internal/dto"
	"studybuddy/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the backing services are reachable
type HealthHandler struct {
	db    Pinger
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Warn("Database health check failed", zap.Error(err))
		resp.Status, resp.Database = "degraded", "unavailable"
	}
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Cache health check failed", zap.Error(err))
		resp.Status, resp.Cache = "degraded", "unavailable"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
