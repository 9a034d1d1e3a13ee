package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/services"
)

// MarketHandler handles live market data requests.
type MarketHandler struct {
	priceService services.PriceServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(priceService services.PriceServicer) *MarketHandler {
	return &MarketHandler{priceService: priceService}
}

// FetchPricesRequest represents the request payload for fetching quotes.
type FetchPricesRequest struct {
	Symbols []string `json:"symbols" binding:"required,min=1,max=10,dive,ticker_symbol"`
}

// FetchPricesResponse maps each resolved symbol to its quote. Symbols
// whose quote could not be retrieved are absent.
type FetchPricesResponse struct {
	Prices map[string]services.Quote `json:"prices"`
}

// FetchPrices resolves current quotes for the given ticker symbols
// @Summary     Fetch market prices
// @Description Get current quotes for up to 10 ticker symbols; at most 5 are resolved per call
// @Tags        market
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FetchPricesRequest true "Ticker symbols"
// @Success     200 {object} FetchPricesResponse "Resolved quotes"
// @Failure     400 {object} ErrorResponse "Invalid symbols"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Provider not configured or unreachable"
// @Router      /market/prices [post]
func (h *MarketHandler) FetchPrices(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req FetchPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrInvalidSymbols)
		return
	}

	prices, err := h.priceService.FetchPrices(c.Request.Context(), req.Symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, FetchPricesResponse{Prices: prices})
}
