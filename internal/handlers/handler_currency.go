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

// currencyHandler handles HTTP requests related to currencies and rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
		currencies.POST("/:code/rates", h.postExchangeRate)
		currencies.GET("/:code/rate", h.getLatestRate)
	}
}

func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
	}
	created, err := h.currencyService.CreateCurrency(c.Request.Context(), currency, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create currency")
		return
	}

	logger.Info("Currency created", slog.String("currency_code", created.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(created))
}

func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	responses := make([]dto.CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = dto.ToCurrencyResponse(&currencies[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	currency, err := h.currencyService.GetCurrency(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

func (h *currencyHandler) postExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.CurrencyCode != "" && req.CurrencyCode != code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency code in path and body differ"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "acting user not resolved"})
		return
	}

	rate, err := h.currencyService.PostExchangeRate(c.Request.Context(), code, req.Rate, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post exchange rate")
		return
	}

	logger.Info("Exchange rate posted", slog.String("currency_code", rate.CurrencyCode), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

func (h *currencyHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	rate, err := h.currencyService.RateFor(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve exchange rate")
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencyCode": code, "rate": rate})
}
