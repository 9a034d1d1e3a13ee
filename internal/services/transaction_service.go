package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/validation"
)

// transactionService handles the transaction ledger. Records are
// immutable once written; the holdings fold happens in the same database
// transaction as the insert.
type transactionService struct {
	db             *gorm.DB
	holdingService HoldingServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, holdingService HoldingServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		holdingService: holdingService,
	}
}

// Create records a validated transaction and folds it into the user's
// holdings atomically.
func (s *transactionService) Create(userID string, platformID *string, rec validation.Normalized) (*models.Transaction, error) {
	if platformID != nil {
		var count int64
		s.db.Model(&models.ConnectedPlatform{}).
			Where("id = ? AND user_id = ?", *platformID, userID).
			Count(&count)
		if count == 0 {
			return nil, apperrors.ErrPlatformNotFound
		}
	}

	txn := &models.Transaction{
		UserID:          userID,
		PlatformID:      platformID,
		TransactionType: rec.TransactionType,
		AssetName:       rec.AssetName,
		AssetType:       rec.AssetType,
		Amount:          rec.Amount,
		Quantity:        rec.Quantity,
		PricePerUnit:    rec.PricePerUnit,
		Fees:            rec.Fees,
		TransactionDate: rec.TransactionDate,
		Status:          rec.Status,
		Notes:           rec.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.holdingService.ApplyTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetUserTransactions retrieves a paginated list of the user's
// transactions, most recent transaction date first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction, scoped to the owning user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}
