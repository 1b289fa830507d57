package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/passworld/internal/logger"
	"github.com/dtroode/passworld/internal/model"
)

// CredentialService defines business operations on saved credentials.
type CredentialService interface {
	ListCredentials(ctx context.Context) ([]model.Credential, error)
	CreateCredential(ctx context.Context, params model.CreateCredentialParams) (model.Credential, error)
	UpdateCredential(ctx context.Context, params model.UpdateCredentialParams) (model.Credential, error)
	DeleteCredential(ctx context.Context, id uuid.UUID) error
}

// Credential handles the credential collection mounted at the root path.
type Credential struct {
	service CredentialService
	logger  *logger.Logger
}

// NewCredential creates a new Credential handler.
func NewCredential(service CredentialService, logger *logger.Logger) *Credential {
	return &Credential{service: service, logger: logger}
}

type credentialResponse struct {
	ID       string `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type createCredentialRequest struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateCredentialRequest struct {
	ID       string `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type deleteCredentialRequest struct {
	ID string `json:"id"`
}

type deleteCredentialResponse struct {
	Success bool `json:"success"`
}

func toCredentialResponse(c model.Credential) credentialResponse {
	return credentialResponse{
		ID:       c.ID.String(),
		Site:     c.Site,
		Username: c.Username,
		Password: c.Password,
	}
}

// List returns every credential.
func (h *Credential) List(c *gin.Context) {
	credentials, err := h.service.ListCredentials(c.Request.Context())
	if err != nil {
		h.logger.Error("Credential handler: list failed", "error", err)
		handleError(c, err, "Failed to fetch")
		return
	}

	resp := make([]credentialResponse, len(credentials))
	for i := range credentials {
		resp[i] = toCredentialResponse(credentials[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Create stores a new credential and returns it with its id.
func (h *Credential) Create(c *gin.Context) {
	var req createCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Credential handler: bad create body", "error", err)
		badRequest(c)
		return
	}

	credential, err := h.service.CreateCredential(c.Request.Context(), model.CreateCredentialParams{
		Site:     req.Site,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Credential handler: create failed", "error", err)
		handleError(c, err, "Failed to save")
		return
	}

	c.JSON(http.StatusOK, toCredentialResponse(credential))
}

// Update replaces site, username and password of an existing credential.
func (h *Credential) Update(c *gin.Context) {
	var req updateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Credential handler: bad update body", "error", err)
		badRequest(c)
		return
	}

	id, err := model.ParseID(req.ID)
	if err != nil {
		handleError(c, err, "Failed to update")
		return
	}

	credential, err := h.service.UpdateCredential(c.Request.Context(), model.UpdateCredentialParams{
		ID:       id,
		Site:     req.Site,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Credential handler: update failed", "id", id, "error", err)
		handleError(c, err, "Failed to update")
		return
	}

	c.JSON(http.StatusOK, toCredentialResponse(credential))
}

// Delete removes a credential.
func (h *Credential) Delete(c *gin.Context) {
	var req deleteCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Credential handler: bad delete body", "error", err)
		badRequest(c)
		return
	}

	id, err := model.ParseID(req.ID)
	if err != nil {
		handleError(c, err, "Failed to delete")
		return
	}

	if err := h.service.DeleteCredential(c.Request.Context(), id); err != nil {
		h.logger.Error("Credential handler: delete failed", "id", id, "error", err)
		handleError(c, err, "Failed to delete")
		return
	}

	c.JSON(http.StatusOK, deleteCredentialResponse{Success: true})
}
