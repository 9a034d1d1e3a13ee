package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/pagination"
	"pesafolio/internal/services"
)

// HoldingHandler handles holding and portfolio summary requests.
type HoldingHandler struct {
	holdingService services.HoldingServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService services.HoldingServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// GetHoldings lists the user's holdings
// @Summary     List holdings
// @Description Get a paginated list of the user's holdings
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Holding] "Paginated holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /holdings [get]
func (h *HoldingHandler) GetHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.holdingService.GetUserHoldings(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPortfolioSummary aggregates the user's holdings into display metrics
// @Summary     Portfolio summary
// @Description Get total value, invested amount, gain, and allocation by asset category
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} portfolio.Summary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/summary [get]
func (h *HoldingHandler) GetPortfolioSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.holdingService.GetPortfolioSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
