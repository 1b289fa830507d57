package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

// SessionService opens sessions in exchange for the PIN.
type SessionService interface {
	Open(ctx context.Context, pin string) (model.Session, error)
}

// Session handles session creation.
type Session struct {
	service SessionService
	logger  *logger.Logger
}

// NewSession creates a new Session handler.
func NewSession(service SessionService, logger *logger.Logger) *Session {
	return &Session{service: service, logger: logger}
}

type openSessionRequest struct {
	PIN string `json:"pin"`
}

type openSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Open checks the PIN and returns a bearer token.
func (h *Session) Open(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	session, err := h.service.Open(c.Request.Context(), req.PIN)
	if err != nil {
		h.logger.Warn("Session handler: open failed", "error", err)
		handleError(c, err, "Failed to open session")
		return
	}

	h.logger.Info("Session handler: session opened", "expires_at", session.ExpiresAt)
	c.JSON(http.StatusOK, openSessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}
