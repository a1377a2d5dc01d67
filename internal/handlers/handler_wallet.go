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

// walletHandler handles HTTP requests for customer wallet ledgers.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	userService   portssvc.UserSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, us portssvc.UserSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws, userService: us}
}

// registerWalletRoutes registers routes related to wallet transactions.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, userService portssvc.UserSvcFacade) {
	h := newWalletHandler(walletService, userService)

	transactions := rg.Group("/wallet-transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// registerCustomerWalletRoutes attaches the wallet views to the customer
// resource.
func registerCustomerWalletRoutes(customers *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService, nil)

	customers.GET("/:customerID/wallet", h.listTransactions)
	customers.GET("/:customerID/wallet/reconcile", h.reconcile)
}

func (h *walletHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWalletTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	txn, err := h.walletService.CreateTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create wallet transaction")
		return
	}

	logger.Info("Wallet transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("customer_id", txn.CustomerID))
	c.JSON(http.StatusCreated, dto.ToWalletTransactionResponse(txn))
}

// updateTransaction is an admin operation: it rewrites a ledger entry and
// rebalances the affected customers.
func (h *walletHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateWalletTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	txn, err := h.walletService.UpdateTransaction(c.Request.Context(), transactionID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update wallet transaction")
		return
	}

	logger.Info("Wallet transaction updated", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToWalletTransactionResponse(txn))
}

// deleteTransaction is an admin operation: the entry disappears and its
// effect on the balance is reversed.
func (h *walletHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	actorID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	if err := h.walletService.DeleteTransaction(c.Request.Context(), transactionID, actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete wallet transaction")
		return
	}

	logger.Info("Wallet transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

func (h *walletHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.walletService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve wallet transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletTransactionResponse(txn))
}

func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	params := dto.ListWalletTransactionsParams{}
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

	summary, err := h.walletService.ListTransactions(c.Request.Context(), customerID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallet transactions")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *walletHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	result, err := h.walletService.Reconcile(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile wallet")
		return
	}
	if !result.Consistent {
		logger.Error("Wallet balance drifted from transaction history",
			slog.String("customer_id", customerID),
			slog.String("stored", result.StoredBalance.String()),
			slog.String("computed", result.ComputedBalance.String()),
		)
	}
	c.JSON(http.StatusOK, result)
}

func (h *walletHandler) requireAdmin(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, found := middleware.GetActorFromContext(c)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return "", false
	}

	user, err := h.userService.GetUser(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve acting user")
		return "", false
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admins can edit wallet history"})
		return "", false
	}
	return actorID, true
}
