package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a financial-instrument transaction.
type TransactionType string

const (
	TransactionTypeBuy        TransactionType = "buy"
	TransactionTypeSell       TransactionType = "sell"
	TransactionTypeDividend   TransactionType = "dividend"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// Physical-asset transactions use a distinct set of kinds.
const (
	TransactionTypePurchase  TransactionType = "purchase"
	TransactionTypeSale      TransactionType = "sale"
	TransactionTypeValuation TransactionType = "valuation"
	TransactionTypeIncome    TransactionType = "income"
)

// Transaction represents a single recorded financial event affecting a
// holding. Transactions are immutable once recorded; there are no update
// or delete operations.
type Transaction struct {
	Base
	UserID          string           `gorm:"type:uuid;not null;index" json:"user_id"`
	PlatformID      *string          `gorm:"type:uuid" json:"platform_id,omitempty"`
	TransactionType TransactionType  `gorm:"not null" json:"transaction_type"`
	AssetName       string           `gorm:"not null" json:"asset_name"`
	AssetType       string           `gorm:"not null" json:"asset_type"`
	Amount          decimal.Decimal  `gorm:"type:numeric;not null" json:"amount"`
	Quantity        *float64         `json:"quantity,omitempty"`
	PricePerUnit    *decimal.Decimal `gorm:"type:numeric" json:"price_per_unit,omitempty"`
	Fees            decimal.Decimal  `gorm:"type:numeric;not null;default:0" json:"fees"`
	TransactionDate time.Time        `gorm:"not null;index" json:"transaction_date"`
	Status          string           `gorm:"default:'completed'" json:"status"`
	Notes           string           `json:"notes,omitempty"`

	Platform *ConnectedPlatform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
}

// AcquiresAsset reports whether the transaction adds units to a holding.
func (t *Transaction) AcquiresAsset() bool {
	return t.TransactionType == TransactionTypeBuy || t.TransactionType == TransactionTypePurchase
}

// DisposesAsset reports whether the transaction removes units from a holding.
func (t *Transaction) DisposesAsset() bool {
	return t.TransactionType == TransactionTypeSell || t.TransactionType == TransactionTypeSale
}
