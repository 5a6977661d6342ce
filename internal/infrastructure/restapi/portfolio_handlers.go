package restapi

import (
	"net/http"

	"balance_ranker/internal/app/port"
	"balance_ranker/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIBalancesResponse is the body of GET /api/v1/balances.
type APIBalancesResponse struct {
	Data          entity.WalletView `json:"data"`
	StatusMessage string            `json:"status_message"`
}

// APIErrorResponse is returned for every failed request.
type APIErrorResponse struct {
	Error         string `json:"error"`
	Asset         string `json:"asset,omitempty"`
	StatusMessage string `json:"status_message"`
}

// PortfolioHandler serves the ranked wallet balances.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	logger           port.Logger
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, logger port.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		logger:           logger,
	}
}

// GetBalancesHandler returns the filtered, ranked and formatted balances with their total USD value.
func (h *PortfolioHandler) GetBalancesHandler(c *gin.Context) {
	view, err := h.portfolioService.DisplayBalances(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build display balances", "error", err)
		respondError(c, err)
		return
	}
	if view.Balances == nil {
		view.Balances = []entity.DisplayBalance{}
	}

	response := APIBalancesResponse{Data: view}
	switch {
	case len(view.SourceErrors) > 0 && len(view.Balances) == 0:
		response.StatusMessage = "No balances to display. Some balance sources failed."
	case len(view.SourceErrors) > 0:
		response.StatusMessage = "Balances retrieved. Some balance sources reported errors."
	case len(view.Balances) == 0:
		response.StatusMessage = "No balances to display."
	default:
		response.StatusMessage = "Balances retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}
