package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType represents the category of a financial-instrument holding.
type AssetType string

const (
	AssetTypeStock        AssetType = "stock"
	AssetTypeETF          AssetType = "etf"
	AssetTypeBond         AssetType = "bond"
	AssetTypeREIT         AssetType = "reit"
	AssetTypeMMF          AssetType = "mmf"
	AssetTypeChama        AssetType = "chama"
	AssetTypeSacco        AssetType = "sacco"
	AssetTypeTreasuryBill AssetType = "treasury_bill"
)

// PhysicalAssetType represents the category of a non-liquid asset holding.
type PhysicalAssetType string

const (
	PhysicalAssetLand       PhysicalAssetType = "land"
	PhysicalAssetRealEstate PhysicalAssetType = "real_estate"
	PhysicalAssetLivestock  PhysicalAssetType = "livestock"
	PhysicalAssetVehicle    PhysicalAssetType = "vehicle"
	PhysicalAssetEquipment  PhysicalAssetType = "equipment"
	PhysicalAssetOther      PhysicalAssetType = "other"
)

// Holding represents a user's recorded position in a named asset.
// AverageCost and CurrentValue are independent fields; no consistency
// with quantity times price is enforced. Values are in KES.
type Holding struct {
	Base
	UserID       string           `gorm:"type:uuid;not null;index" json:"user_id"`
	PlatformID   *string          `gorm:"type:uuid" json:"platform_id,omitempty"`
	AssetName    string           `gorm:"not null" json:"asset_name"`
	AssetType    string           `gorm:"not null;index" json:"asset_type"`
	Quantity     float64          `gorm:"not null" json:"quantity"`
	AverageCost  *decimal.Decimal `gorm:"type:numeric" json:"average_cost,omitempty"`
	CurrentValue *decimal.Decimal `gorm:"type:numeric" json:"current_value,omitempty"`
	LastUpdated  time.Time        `json:"last_updated"`

	Platform *ConnectedPlatform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
}

// MarketPriceable reports whether the holding's asset type has exchange
// quotes available from the market data provider.
func (h *Holding) MarketPriceable() bool {
	switch AssetType(h.AssetType) {
	case AssetTypeStock, AssetTypeETF:
		return true
	default:
		return false
	}
}
