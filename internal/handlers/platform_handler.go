package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/services"
)

// PlatformHandler handles connected-platform requests.
type PlatformHandler struct {
	platformService services.PlatformServicer
	auditService    services.AuditServicer
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(platformService services.PlatformServicer, auditService services.AuditServicer) *PlatformHandler {
	return &PlatformHandler{platformService: platformService, auditService: auditService}
}

// ConnectPlatformRequest represents the request payload for linking an
// external investment platform.
type ConnectPlatformRequest struct {
	PlatformName string `json:"platform_name" binding:"required,min=1,max=100"`
	PlatformType string `json:"platform_type" binding:"required,platform_type"`
	APIKey       string `json:"api_key" binding:"max=500"`
}

// ConnectPlatform links an external platform to the authenticated user
// @Summary     Connect a platform
// @Description Link an external investment platform (broker, bank, MMF, SACCO)
// @Tags        platforms
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ConnectPlatformRequest true "Platform details"
// @Success     201 {object} models.ConnectedPlatform "Platform connected"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /platforms [post]
func (h *PlatformHandler) ConnectPlatform(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ConnectPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	platform, err := h.platformService.ConnectPlatform(userID, req.PlatformName, models.PlatformType(req.PlatformType), req.APIKey)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONNECT_PLATFORM", "platform", platform.ID, c.ClientIP(),
		map[string]any{"platform_name": req.PlatformName, "platform_type": req.PlatformType})

	c.JSON(http.StatusCreated, gin.H{"platform": platform})
}

// GetPlatforms lists the user's connected platforms
// @Summary     List connected platforms
// @Description Get a paginated list of the user's connected platforms
// @Tags        platforms
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ConnectedPlatform] "Paginated platforms"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /platforms [get]
func (h *PlatformHandler) GetPlatforms(c *gin.Context) {
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

	result, err := h.platformService.GetUserPlatforms(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlatform retrieves a single connected platform
// @Summary     Get a platform
// @Description Get one of the user's connected platforms by ID
// @Tags        platforms
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Platform ID"
// @Success     200 {object} models.ConnectedPlatform "Platform"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /platforms/{id} [get]
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	platform, err := h.platformService.GetPlatformByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"platform": platform})
}
