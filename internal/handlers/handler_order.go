package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/salescore/order_ledger_app/internal/middleware"
)

// orderHandler handles HTTP requests for the order lifecycle.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers routes related to orders and quotes.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID", h.updateOrder)
		orders.POST("/:orderID/convert", h.convertToFirmOrder)
		orders.POST("/:orderID/payments", h.recordPayment)
	}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID), slog.String("code", order.Code))
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update order")
		return
	}

	logger.Info("Order updated", slog.String("order_id", order.OrderID), slog.Int64("version", order.Version))
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) convertToFirmOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	order, err := h.orderService.ConvertToFirmOrder(c.Request.Context(), orderID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert quote")
		return
	}

	logger.Info("Quote converted to order", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), orderID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("order_id", order.OrderID), slog.String("payment_status", string(order.PaymentStatus)))
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListOrdersParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}
