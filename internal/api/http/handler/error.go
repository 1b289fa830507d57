package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError writes the response for err. Unknown errors become a 500 with fallback as message.
func handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid id"})
	case errors.Is(err, model.ErrInvalidBackupKey):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid backup key"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, model.ErrIncorrectPIN):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Incorrect PIN"})
	case errors.Is(err, model.ErrSessionsDisabled):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Sessions are disabled"})
	case errors.Is(err, model.ErrStorageDisabled):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Backups are disabled"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
}
