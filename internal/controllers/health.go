package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger - всё, что health-check'у нужно от пула соединений.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db     Pinger
	logger *zap.Logger
}

func NewHealthController(db Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *HealthController) Check(ctx echo.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Error("Health: база данных недоступна", zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:    "Server degraded",
			Database:  "PostgreSQL unavailable",
			Timestamp: time.Now(),
		})
	}
	return ctx.JSON(http.StatusOK, healthResponse{
		Status:    "Server running",
		Database:  "PostgreSQL connected",
		Timestamp: time.Now(),
	})
}
