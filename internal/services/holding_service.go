package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/logger"
	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
	"pesafolio/internal/portfolio"
)

// refreshBatchSize is how many distinct symbols a single refresh run
// revalues. It matches the per-invocation cap of the price service, so
// one run never exceeds the provider's rate ceiling. Picking the stalest
// symbols first rotates coverage across runs.
const refreshBatchSize = 5

// holdingService handles holding and portfolio aggregation logic.
type holdingService struct {
	db           *gorm.DB
	priceService PriceServicer
}

// NewHoldingService creates a new HoldingServicer. The price service may
// be nil when market revaluation is not wired (tests, migrate tooling).
func NewHoldingService(db *gorm.DB, priceService PriceServicer) HoldingServicer {
	return &holdingService{db: db, priceService: priceService}
}

// GetUserHoldings retrieves a paginated list of the user's holdings,
// newest first.
func (s *holdingService) GetUserHoldings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error) {
	page.Defaults()

	base := s.db.Model(&models.Holding{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.Holding
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(holdings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPortfolioSummary aggregates all of the user's holdings into display
// metrics. The fold itself lives in the portfolio package and is pure.
func (s *holdingService) GetPortfolioSummary(userID string) (*portfolio.Summary, error) {
	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := portfolio.Summarize(holdings)
	return &summary, nil
}

// ApplyTransaction folds a newly recorded transaction into the user's
// holdings. Acquisitions upsert a holding and re-average its cost;
// disposals reduce quantity and value, never below zero; valuations
// replace the current value; dividends leave holdings untouched. Cash
// movements (deposit/withdrawal/income) adjust the holding's value
// without touching units.
func (s *holdingService) ApplyTransaction(tx *gorm.DB, txn *models.Transaction) error {
	var holding models.Holding
	err := tx.Where("user_id = ? AND asset_name = ? AND asset_type = ?",
		txn.UserID, txn.AssetName, txn.AssetType).First(&holding).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()

	switch {
	case txn.AcquiresAsset():
		qty := 0.0
		if txn.Quantity != nil {
			qty = *txn.Quantity
		}
		if !found {
			holding = models.Holding{
				UserID:      txn.UserID,
				PlatformID:  txn.PlatformID,
				AssetName:   txn.AssetName,
				AssetType:   txn.AssetType,
				Quantity:    qty,
				LastUpdated: now,
			}
			if qty > 0 {
				avg := txn.Amount.Div(decimal.NewFromFloat(qty))
				holding.AverageCost = &avg
			}
			holding.CurrentValue = decimalPtr(txn.Amount)
			return wrapDB(tx.Create(&holding).Error)
		}

		newQty := holding.Quantity + qty
		if newQty > 0 {
			prior := decimal.Zero
			if holding.AverageCost != nil {
				prior = holding.AverageCost.Mul(decimal.NewFromFloat(holding.Quantity))
			}
			avg := prior.Add(txn.Amount).Div(decimal.NewFromFloat(newQty))
			holding.AverageCost = &avg
		}
		holding.Quantity = newQty
		holding.CurrentValue = decimalPtr(currentOrZero(&holding).Add(txn.Amount))

	case txn.DisposesAsset():
		if !found {
			// Selling something never recorded: nothing to reduce.
			return nil
		}
		qty := 0.0
		if txn.Quantity != nil {
			qty = *txn.Quantity
		}
		holding.Quantity = holding.Quantity - qty
		if holding.Quantity < 0 {
			holding.Quantity = 0
		}
		value := currentOrZero(&holding).Sub(txn.Amount)
		if value.IsNegative() {
			value = decimal.Zero
		}
		holding.CurrentValue = &value

	case txn.TransactionType == models.TransactionTypeValuation:
		if !found {
			holding = models.Holding{
				UserID:      txn.UserID,
				PlatformID:  txn.PlatformID,
				AssetName:   txn.AssetName,
				AssetType:   txn.AssetType,
				LastUpdated: now,
			}
			holding.CurrentValue = decimalPtr(txn.Amount)
			return wrapDB(tx.Create(&holding).Error)
		}
		holding.CurrentValue = decimalPtr(txn.Amount)

	case txn.TransactionType == models.TransactionTypeDeposit:
		if !found {
			holding = models.Holding{
				UserID:      txn.UserID,
				PlatformID:  txn.PlatformID,
				AssetName:   txn.AssetName,
				AssetType:   txn.AssetType,
				LastUpdated: now,
			}
			holding.CurrentValue = decimalPtr(txn.Amount)
			return wrapDB(tx.Create(&holding).Error)
		}
		holding.CurrentValue = decimalPtr(currentOrZero(&holding).Add(txn.Amount))

	case txn.TransactionType == models.TransactionTypeWithdrawal:
		if !found {
			return nil
		}
		value := currentOrZero(&holding).Sub(txn.Amount)
		if value.IsNegative() {
			value = decimal.Zero
		}
		holding.CurrentValue = &value

	default:
		// Dividends and physical-asset income are cash events that do
		// not change the recorded position.
		return nil
	}

	holding.LastUpdated = now
	return wrapDB(tx.Save(&holding).Error)
}

// RefreshMarketValues revalues the stalest exchange-traded holdings from
// live quotes. Per-symbol quote failures are skipped, not retried.
func (s *holdingService) RefreshMarketValues(ctx context.Context) (int, error) {
	if s.priceService == nil {
		return 0, nil
	}

	// The stalest distinct symbols go first so coverage rotates.
	var symbols []string
	if err := s.db.Model(&models.Holding{}).
		Where("asset_type IN ?", []string{string(models.AssetTypeStock), string(models.AssetTypeETF)}).
		Group("asset_name").
		Order("MIN(last_updated) ASC").
		Limit(refreshBatchSize).
		Pluck("asset_name", &symbols).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	quotes, err := s.priceService.FetchPrices(ctx, symbols)
	if err != nil {
		return 0, err
	}

	updated := 0
	now := time.Now()
	for symbol, quote := range quotes {
		var holdings []models.Holding
		if err := s.db.Where("asset_name = ? AND asset_type IN ?",
			symbol, []string{string(models.AssetTypeStock), string(models.AssetTypeETF)}).
			Find(&holdings).Error; err != nil {
			logger.Get().Warnw("failed to load holdings for revaluation", "symbol", symbol, "error", err)
			continue
		}
		for i := range holdings {
			h := &holdings[i]
			value := decimal.NewFromFloat(quote.Price).Mul(decimal.NewFromFloat(h.Quantity))
			h.CurrentValue = &value
			h.LastUpdated = now
			if err := s.db.Save(h).Error; err != nil {
				logger.Get().Warnw("failed to save revalued holding", "holding_id", h.ID, "error", err)
				continue
			}
			updated++
		}
	}

	return updated, nil
}

func currentOrZero(h *models.Holding) decimal.Decimal {
	if h.CurrentValue != nil {
		return *h.CurrentValue
	}
	return decimal.Zero
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func wrapDB(err error) error {
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
