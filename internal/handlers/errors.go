package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salescore/order_ledger_app/internal/apperrors"
)

// respondServiceError translates a service error into an HTTP response.
// Sentinel errors map to their status; anything else is a 500 with a
// generic message so internals never leak.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrInvalidRate):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrUnknownCurrency):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrConcurrentModification):
		logger.Warn("Conflicting write", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrOrphanTransaction):
		logger.Warn("Orphan wallet transaction rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrStockLockTimeout):
		logger.Warn("Stock lock timeout", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stock rows are busy, please retry"})

	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
