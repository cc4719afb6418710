package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/boardhub-dev/boardhub/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and surfaced as a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrBadRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
