package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/middleware"
)

// inventoryHandler handles stock adjustments outside the order flow.
type inventoryHandler struct {
	inventoryService    portssvc.InventorySvcFacade
	notificationService portssvc.NotificationSvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade, ns portssvc.NotificationSvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is, notificationService: ns}
}

// adjustStockRequest is the payload for a manual stock adjustment.
type adjustStockRequest struct {
	ProductID string `json:"productID" binding:"required"`
	BranchID  string `json:"branchID" binding:"required"`
	Delta     int64  `json:"delta" binding:"required"`
}

// registerInventoryRoutes registers stock and notification routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade, notificationService portssvc.NotificationSvcFacade) {
	h := newInventoryHandler(inventoryService, notificationService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/adjustments", h.adjustStock)
		inventory.GET("/:branchID/:productID", h.getStock)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
	}
}

func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	stock, err := h.inventoryService.AdjustStock(c.Request.Context(), req.ProductID, req.BranchID, req.Delta, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to adjust stock")
		return
	}

	logger.Info("Stock adjusted",
		slog.String("product_id", req.ProductID),
		slog.String("branch_id", req.BranchID),
		slog.Int64("delta", req.Delta),
		slog.Int64("stock", stock.Stock),
	)
	c.JSON(http.StatusOK, stock)
}

func (h *inventoryHandler) getStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stock, err := h.inventoryService.GetStock(c.Request.Context(), c.Param("productID"), c.Param("branchID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock")
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *inventoryHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), actorID, limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}
