package restapi

import (
	"errors"
	"net/http"

	"balance_ranker/internal/app/exchange"
	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SwapRequest is the body of POST /api/v1/swap. Amount accepts a JSON number or string.
type SwapRequest struct {
	FromCurrency string           `json:"fromCurrency" binding:"required"`
	ToCurrency   string           `json:"toCurrency" binding:"required"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
}

// SwapQuote is a conversion result with the output rendered for display.
type SwapQuote struct {
	entity.ConversionResult
	FormattedOutput string `json:"formattedOutput"`
}

// APISwapResponse is the body of a successful POST /api/v1/swap.
type APISwapResponse struct {
	Data          SwapQuote `json:"data"`
	StatusMessage string    `json:"status_message"`
}

// APIPricesResponse is the body of GET /api/v1/prices.
type APIPricesResponse struct {
	Data struct {
		Prices []entity.CurrencyInfo `json:"prices"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// SwapHandler serves the currency list and conversion quotes.
type SwapHandler struct {
	swapService port.SwapService
	logger      port.Logger
}

// NewSwapHandler creates a new instance of SwapHandler.
func NewSwapHandler(ss port.SwapService, logger port.Logger) *SwapHandler {
	return &SwapHandler{swapService: ss, logger: logger}
}

// GetPricesHandler lists every priced currency with its icon.
func (h *SwapHandler) GetPricesHandler(c *gin.Context) {
	currencies, err := h.swapService.Currencies(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list currencies", "error", err)
		respondError(c, err)
		return
	}

	var response APIPricesResponse
	response.Data.Prices = currencies
	response.StatusMessage = "Prices retrieved successfully."
	c.JSON(http.StatusOK, response)
}

// PostSwapHandler quotes the conversion of amount fromCurrency into toCurrency.
func (h *SwapHandler) PostSwapHandler(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Error:         err.Error(),
			StatusMessage: "Invalid swap request.",
		})
		return
	}

	result, err := h.swapService.Quote(c.Request.Context(), req.FromCurrency, req.ToCurrency, *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APISwapResponse{
		Data: SwapQuote{
			ConversionResult: result,
			FormattedOutput:  exchange.FormatResult(result.OutputAmount),
		},
		StatusMessage: "Quote computed successfully.",
	})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var invalid *entity.InvalidAssetError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Error:         err.Error(),
			Asset:         invalid.Asset,
			StatusMessage: "Unknown currency.",
		})
	case errors.Is(err, entity.ErrDivisionByZero):
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse{
			Error:         err.Error(),
			StatusMessage: "Target currency is priced at zero.",
		})
	default:
		c.JSON(http.StatusBadGateway, APIErrorResponse{
			Error:         err.Error(),
			StatusMessage: "Upstream data is unavailable.",
		})
	}
}
