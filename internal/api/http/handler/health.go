package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/logger"
)

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the API can reach its store.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Health) Check(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health handler: store unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
