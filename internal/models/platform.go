package models

import "time"

// PlatformType classifies where a connected platform lives.
type PlatformType string

const (
	PlatformTypeBroker   PlatformType = "broker"
	PlatformTypeBank     PlatformType = "bank"
	PlatformTypeMMF      PlatformType = "mmf"
	PlatformTypeSacco    PlatformType = "sacco"
	PlatformTypeChama    PlatformType = "chama"
	PlatformTypeCustodian PlatformType = "custodian"
)

// ConnectedPlatform represents an external investment platform linked
// to a user's account (e.g. an NSE broker CDS account or an MMF).
type ConnectedPlatform struct {
	Base
	UserID           string       `gorm:"type:uuid;not null;index" json:"user_id"`
	PlatformName     string       `gorm:"not null" json:"platform_name"`
	PlatformType     PlatformType `gorm:"not null" json:"platform_type"`
	APIKey           string       `json:"-"`
	ConnectionStatus string       `gorm:"default:'pending'" json:"connection_status"`
	LastSync         *time.Time   `json:"last_sync,omitempty"`
}
