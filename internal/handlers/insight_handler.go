package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/services"
)

// maxInsightEntries caps how much portfolio data a single insight request
// may carry, keeping prompts bounded.
const maxInsightEntries = 100

// InsightHandler handles AI portfolio commentary requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GenerateInsightsRequest represents the request payload for generating
// portfolio commentary. Holdings and transactions are passed through as
// free-form objects; only their size is validated here.
type GenerateInsightsRequest struct {
	PortfolioData []map[string]any `json:"portfolioData" binding:"required"`
	Transactions  []map[string]any `json:"transactions"`
}

// GenerateInsightsResponse carries the model's commentary verbatim.
type GenerateInsightsResponse struct {
	Insights string `json:"insights"`
}

// GenerateInsights produces investment commentary for the given portfolio
// @Summary     Generate portfolio insights
// @Description Generate free-text investment commentary from a portfolio snapshot
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateInsightsRequest true "Portfolio snapshot"
// @Success     200 {object} GenerateInsightsResponse "Generated commentary"
// @Failure     400 {object} ErrorResponse "Invalid portfolio data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Upstream model failure"
// @Router      /insights [post]
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrInsightBadInput)
		return
	}

	if len(req.PortfolioData) == 0 || len(req.PortfolioData) > maxInsightEntries || len(req.Transactions) > maxInsightEntries {
		respondWithError(c, apperrors.ErrInsightBadInput)
		return
	}

	insights, err := h.insightService.GenerateInsights(c.Request.Context(), req.PortfolioData, req.Transactions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateInsightsResponse{Insights: insights})
}
