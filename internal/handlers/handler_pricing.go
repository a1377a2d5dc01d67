package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/salescore/order_ledger_app/internal/middleware"
)

// pricingHandler handles the read-only pricing endpoints used while a
// seller is composing an order.
type pricingHandler struct {
	pricingService portssvc.PricingSvcFacade
	userService    portssvc.UserSvcFacade
}

func newPricingHandler(ps portssvc.PricingSvcFacade, us portssvc.UserSvcFacade) *pricingHandler {
	return &pricingHandler{pricingService: ps, userService: us}
}

// registerPricingRoutes registers routes related to pricing computations.
func registerPricingRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newPricingHandler(pricingService, userService)

	pricing := rg.Group("/pricing")
	{
		pricing.POST("/line", h.priceLine)
		pricing.POST("/totals", h.computeTotals)
		pricing.POST("/draft", h.deriveDraft)
	}
}

func (h *pricingHandler) priceLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PriceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for priceLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	perms, ok := h.resolvePerms(c)
	if !ok {
		return
	}

	priced, err := h.pricingService.PriceLine(c.Request.Context(), req.ProductID, req.Quantity, req.MarginPercent, perms)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to price line")
		return
	}

	c.JSON(http.StatusOK, dto.PriceLineResponse{
		UnitPrice: priced.UnitPrice,
		LineTotal: priced.LineTotal,
		Warnings:  priced.Warnings,
	})
}

func (h *pricingHandler) computeTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ComputeTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for computeTotals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals, err := h.pricingService.ComputeTotals(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *pricingHandler) deriveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeriveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deriveDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	perms, ok := h.resolvePerms(c)
	if !ok {
		return
	}

	draft, err := h.pricingService.DeriveDraft(c.Request.Context(), req, perms)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to derive draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *pricingHandler) resolvePerms(c *gin.Context) (perms domain.Permissions, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, found := middleware.GetActorFromContext(c)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return perms, false
	}

	perms, err := h.userService.GetPermissions(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve user permissions")
		return perms, false
	}
	return perms, true
}
