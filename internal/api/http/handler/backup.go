package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

// BackupService takes and restores vault snapshots.
type BackupService interface {
	Backup(ctx context.Context) (model.BackupResult, error)
	Restore(ctx context.Context, key string) (int, error)
}

// Backup handles snapshot endpoints. A nil service answers every request with 404.
type Backup struct {
	service BackupService
	logger  *logger.Logger
}

// NewBackup creates a new Backup handler.
func NewBackup(service BackupService, logger *logger.Logger) *Backup {
	return &Backup{service: service, logger: logger}
}

type backupResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type restoreRequest struct {
	Key string `json:"key"`
}

type restoreResponse struct {
	Count int `json:"count"`
}

// Create uploads a snapshot of the whole vault.
func (h *Backup) Create(c *gin.Context) {
	if h.service == nil {
		handleError(c, model.ErrStorageDisabled, "")
		return
	}

	res, err := h.service.Backup(c.Request.Context())
	if err != nil {
		h.logger.Error("Backup handler: backup failed", "error", err)
		handleError(c, err, "Failed to back up")
		return
	}

	c.JSON(http.StatusOK, backupResponse{Key: res.Key, Count: res.Count})
}

// Restore upserts the credentials of a stored snapshot.
func (h *Backup) Restore(c *gin.Context) {
	if h.service == nil {
		handleError(c, model.ErrStorageDisabled, "")
		return
	}

	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	n, err := h.service.Restore(c.Request.Context(), req.Key)
	if err != nil {
		h.logger.Error("Backup handler: restore failed", "key", req.Key, "error", err)
		handleError(c, err, "Failed to restore")
		return
	}

	c.JSON(http.StatusOK, restoreResponse{Count: n})
}
