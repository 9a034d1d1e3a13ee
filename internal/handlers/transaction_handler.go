package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/pagination"
	"pesafolio/internal/services"
	"pesafolio/internal/validation"
)

// TransactionHandler handles transaction ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a
// transaction. The transaction fields are validated field by field; a
// failure returns the offending fields with messages rather than a single
// binding error.
type CreateTransactionRequest struct {
	validation.Input
	PlatformID *string `json:"platform_id,omitempty" binding:"omitempty,uuid"`
}

// CreateTransaction records a financial-instrument transaction
// @Summary     Record a transaction
// @Description Record a buy, sell, dividend, deposit, or withdrawal against a financial instrument
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Platform not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	h.create(c, validation.Financial, "CREATE_TRANSACTION")
}

// CreatePhysicalTransaction records a physical-asset transaction
// @Summary     Record a physical-asset transaction
// @Description Record a purchase, sale, valuation, or income event against a physical asset
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Platform not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/physical [post]
func (h *TransactionHandler) CreatePhysicalTransaction(c *gin.Context) {
	h.create(c, validation.Physical, "CREATE_PHYSICAL_TRANSACTION")
}

func (h *TransactionHandler) create(c *gin.Context, validateFn func(validation.Input) (*validation.Normalized, validation.FieldErrors), auditAction string) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rec, fieldErrs := validateFn(req.Input)
	if len(fieldErrs) > 0 {
		respondWithFieldErrors(c, fieldErrs)
		return
	}

	txn, err := h.transactionService.Create(userID, req.PlatformID, *rec)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, auditAction, "transaction", txn.ID, c.ClientIP(),
		map[string]any{"transaction_type": string(txn.TransactionType), "asset_name": txn.AssetName, "amount": txn.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// GetTransactions lists the user's transactions
// @Summary     List transactions
// @Description Get a paginated list of the user's transactions, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	result, err := h.transactionService.GetUserTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction retrieves a single transaction
// @Summary     Get a transaction
// @Description Get one of the user's transactions by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}
